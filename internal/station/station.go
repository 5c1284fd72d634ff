// Package station holds the in-memory directory of playable lofi stations.
package station

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// DefaultGenre is applied to records created without a genre.
const DefaultGenre = "lofi"

// DefaultID is the station played when nothing else is configured.
const DefaultID = "lofi-hip-hop"

// ErrDuplicateKey is returned by Registry.Add when the id is already taken.
var ErrDuplicateKey = errors.New("station already exists")

// Record describes a single station. Registries store copies, so a Record
// obtained from one can be modified freely without affecting the registry.
type Record struct {
	ID          string
	Name        string
	URL         string
	Description string
	Genre       string
}

// New builds a Record, applying DefaultGenre when genre is blank.
func New(id, name, url, description, genre string) Record {
	if strings.TrimSpace(genre) == "" {
		genre = DefaultGenre
	}
	return Record{
		ID:          strings.TrimSpace(id),
		Name:        name,
		URL:         strings.TrimSpace(url),
		Description: description,
		Genre:       genre,
	}
}

func (r Record) String() string {
	return r.Name + " - " + r.Description
}

// Defaults returns the stations available at startup.
func Defaults() []Record {
	return []Record{
		New(
			"lofi-hip-hop",
			"Lofi Hip Hop Radio - Beats to Relax/Study",
			"https://www.youtube.com/watch?v=jfKfPfyJRdk",
			"24/7 chill lofi hip hop beats to study/relax to",
			"lofi-hip-hop",
		),
		New(
			"lofi-sleep",
			"Lofi Hip Hop Radio - Beats to Sleep/Chill",
			"https://www.youtube.com/@LofiGirl/streams",
			"Calming lofi beats for sleep and meditation",
			"lofi-sleep",
		),
		New(
			"synthwave",
			"Synthwave Radio - Beats to Chill/Game",
			"https://www.youtube.com/@LofiGirl/streams",
			"Retro synthwave beats perfect for gaming",
			"synthwave",
		),
		New(
			"lofi-jazz",
			"Jazz Lofi Radio - Beats to Chill/Study",
			"https://www.youtube.com/@LofiGirl/streams",
			"Smooth jazz with lofi aesthetics",
			"jazz",
		),
	}
}

// Registry maps station ids to records and remembers insertion order.
type Registry struct {
	mu    sync.RWMutex
	order []string
	items map[string]Record
}

// NewRegistry returns a registry seeded with records, in order.
func NewRegistry(records ...Record) (*Registry, error) {
	r := &Registry{items: make(map[string]Record, len(records))}
	for _, rec := range records {
		if err := r.Add(rec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry returns a registry holding Defaults().
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(Defaults()...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get looks a station up by id.
func (r *Registry) Get(id string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.items[id]
	return rec, ok
}

// List returns every station in insertion order.
func (r *Registry) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.items[id])
	}
	return list
}

// IDs returns station ids in insertion order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// At returns the station at position i of the insertion order.
func (r *Registry) At(i int) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.order) {
		return Record{}, false
	}
	return r.items[r.order[i]], true
}

// Index returns the position of id in insertion order, or -1.
func (r *Registry) Index(id string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i, existing := range r.order {
		if existing == id {
			return i
		}
	}
	return -1
}

// Add inserts rec. It fails with ErrDuplicateKey when the id exists.
func (r *Registry) Add(rec Record) error {
	if strings.TrimSpace(rec.ID) == "" {
		return errors.New("station id is required")
	}
	if rec.Genre == "" {
		rec.Genre = DefaultGenre
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.items == nil {
		r.items = make(map[string]Record)
	}
	if _, ok := r.items[rec.ID]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, rec.ID)
	}
	r.items[rec.ID] = rec
	r.order = append(r.order, rec.ID)
	return nil
}

// Remove deletes the station with id and reports whether it existed.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return false
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Replace swaps the contents for records. On error the registry is unchanged.
func (r *Registry) Replace(records ...Record) error {
	next, err := NewRegistry(records...)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = next.order
	r.items = next.items
	return nil
}
