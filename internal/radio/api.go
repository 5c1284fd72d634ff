// Package radio discovers extra stations through the Radio Browser API.
package radio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"lofigirl-terminal/internal/station"
)

const (
	defaultBaseURL = "https://all.api.radio-browser.info"
	defaultTimeout = 12 * time.Second

	// DefaultTag is the tag used for lofi discovery.
	DefaultTag   = "lofi"
	DefaultLimit = 25
)

type Client struct {
	mu        sync.RWMutex
	baseURL   string
	userAgent string
	timeout   time.Duration
	http      *http.Client
}

type serverInfo struct {
	Name string `json:"name"`
}

// NewClient creates a Radio Browser API client. A non-positive timeout
// falls back to the package default.
func NewClient(userAgent string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(userAgent) == "" {
		return nil, errors.New("user agent is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:   defaultBaseURL,
		userAgent: userAgent,
		timeout:   timeout,
		http:      &http.Client{Timeout: timeout},
	}, nil
}

// StationsByTag fetches working stations carrying tag, most clicked first.
func (c *Client) StationsByTag(ctx context.Context, tag string, limit int) ([]Station, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return nil, errors.New("tag is required")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	endpoint := fmt.Sprintf("/json/stations/bytagexact/%s", url.PathEscape(tag))
	query := url.Values{}
	query.Set("hidebroken", "true")
	query.Set("order", "clickcount")
	query.Set("reverse", "true")
	query.Set("limit", strconv.Itoa(limit))

	reqURL := c.base() + endpoint + "?" + query.Encode()
	var stations []Station
	if err := c.doJSON(ctx, reqURL, &stations); err != nil {
		return nil, err
	}
	return stations, nil
}

// Discover returns playable records for tag, skipping entries without a
// stream URL or with a duplicate id. Entries listing only a playlist URL are
// resolved through ResolveStationURL.
func (c *Client) Discover(ctx context.Context, tag string, limit int) ([]station.Record, error) {
	stations, err := c.StationsByTag(ctx, tag, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(stations))
	records := make([]station.Record, 0, len(stations))
	for _, s := range stations {
		if strings.TrimSpace(s.UUID) == "" {
			continue
		}
		if strings.TrimSpace(s.URLResolved) == "" && strings.TrimSpace(s.URL) != "" {
			if direct, err := c.ResolveStationURL(ctx, s.UUID); err == nil {
				s.URLResolved = direct
			}
		}
		rec := s.Record()
		if rec.URL == "" || rec.Name == "" || seen[rec.ID] {
			continue
		}
		seen[rec.ID] = true
		records = append(records, rec)
	}
	return records, nil
}

// ResolveStationURL calls /json/url/{stationuuid} and returns a resolved stream URL.
func (c *Client) ResolveStationURL(ctx context.Context, uuid string) (string, error) {
	uuid = strings.TrimSpace(uuid)
	if uuid == "" {
		return "", errors.New("station uuid is required")
	}

	reqURL := c.base() + fmt.Sprintf("/json/url/%s", url.PathEscape(uuid))
	data, err := c.getBytes(ctx, reqURL)
	if err != nil {
		return "", err
	}

	var single Station
	if err := json.Unmarshal(data, &single); err == nil && single.UUID != "" {
		return resolvedURL(single)
	}

	var stations []Station
	if err := json.Unmarshal(data, &stations); err != nil {
		return "", err
	}
	if len(stations) == 0 {
		return "", errors.New("no station data returned")
	}
	return resolvedURL(stations[0])
}

// PickServer switches to a random mirror from /json/servers. On failure the
// client keeps its current base URL.
func (c *Client) PickServer(ctx context.Context) error {
	var servers []serverInfo
	if err := c.doJSON(ctx, c.base()+"/json/servers", &servers); err != nil {
		return err
	}
	if len(servers) == 0 {
		return errors.New("no api servers returned")
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	choice := strings.TrimSpace(servers[r.Intn(len(servers))].Name)
	if choice == "" {
		return errors.New("empty server name")
	}
	c.mu.Lock()
	c.baseURL = "https://" + choice
	c.mu.Unlock()
	return nil
}

// BaseURL returns the API server in use.
func (c *Client) BaseURL() string {
	return c.base()
}

func (c *Client) base() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func resolvedURL(s Station) (string, error) {
	if strings.TrimSpace(s.URLResolved) != "" {
		return strings.TrimSpace(s.URLResolved), nil
	}
	if strings.TrimSpace(s.URL) != "" {
		return strings.TrimSpace(s.URL), nil
	}
	return "", errors.New("station has no stream url")
}

func (c *Client) doJSON(ctx context.Context, reqURL string, target any) error {
	data, err := c.getBytes(ctx, reqURL)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

func (c *Client) getBytes(ctx context.Context, reqURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed: %s", resp.Status)
	}

	// Cap at 10MB so a runaway response cannot exhaust memory.
	return io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
}
