package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"lofigirl-terminal/internal/station"
)

type Favorite struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Genre string `json:"genre"`
}

// Favorites is the persisted set of starred stations.
type Favorites struct {
	mu    sync.Mutex
	path  string
	items map[string]Favorite
}

type favoritesFile struct {
	Stations []Favorite `json:"stations"`
}

// LoadFavorites reads favorites.json from dir. A missing file yields an empty set.
func LoadFavorites(dir string) (*Favorites, error) {
	favs := &Favorites{
		path:  filepath.Join(dir, "favorites.json"),
		items: map[string]Favorite{},
	}

	data, err := os.ReadFile(favs.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return favs, nil
		}
		return nil, err
	}

	var stored favoritesFile
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	for _, fav := range stored.Stations {
		if fav.ID != "" {
			favs.items[fav.ID] = fav
		}
	}
	return favs, nil
}

// Toggle stars or unstars rec and reports whether it is now a favorite.
func (f *Favorites) Toggle(rec station.Record) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if rec.ID == "" {
		return false, errors.New("station id is required")
	}

	if _, ok := f.items[rec.ID]; ok {
		delete(f.items, rec.ID)
		return false, f.saveLocked()
	}

	f.items[rec.ID] = Favorite{
		ID:    rec.ID,
		Name:  rec.Name,
		URL:   rec.URL,
		Genre: rec.Genre,
	}
	return true, f.saveLocked()
}

func (f *Favorites) IsFavorite(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[id]
	return ok
}

func (f *Favorites) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}

// List returns favorites sorted by name.
func (f *Favorites) List() []Favorite {
	f.mu.Lock()
	defer f.mu.Unlock()

	list := make([]Favorite, 0, len(f.items))
	for _, fav := range f.items {
		list = append(list, fav)
	}
	sort.Slice(list, func(i, j int) bool {
		ni := strings.ToLower(strings.TrimSpace(list[i].Name))
		nj := strings.ToLower(strings.TrimSpace(list[j].Name))
		if ni == nj {
			return list[i].ID < list[j].ID
		}
		return ni < nj
	})
	return list
}

// Records converts favorites back into station records, e.g. to restore
// discovered stations that are not part of the defaults.
func (f *Favorites) Records() []station.Record {
	list := f.List()
	records := make([]station.Record, 0, len(list))
	for _, fav := range list {
		records = append(records, station.New(fav.ID, fav.Name, fav.URL, "", fav.Genre))
	}
	return records
}

func (f *Favorites) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	list := make([]Favorite, 0, len(f.items))
	for _, fav := range f.items {
		list = append(list, fav)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.MarshalIndent(favoritesFile{Stations: list}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}
