package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// PSGCClient — lookup client for the Philippine Standard Geographic Code API.
// Responses are cached in memory because the dataset changes a few times a
// year at most.
type PSGCClient struct {
	BaseURL string
	Client  *http.Client
	TTL     time.Duration

	mu    sync.Mutex
	cache map[string]psgcCacheEntry
}

type PSGCItem struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type psgcCacheEntry struct {
	items   []PSGCItem
	fetched time.Time
}

func NewPSGCClient(baseURL string, ttl time.Duration) *PSGCClient {
	return &PSGCClient{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 10 * time.Second},
		TTL:     ttl,
		cache:   map[string]psgcCacheEntry{},
	}
}

func (c *PSGCClient) Regions() ([]PSGCItem, error) {
	return c.get("/regions.json")
}

func (c *PSGCClient) Provinces(regionCode string) ([]PSGCItem, error) {
	return c.get(fmt.Sprintf("/regions/%s/provinces.json", regionCode))
}

func (c *PSGCClient) CitiesMunicipalities(provinceCode string) ([]PSGCItem, error) {
	return c.get(fmt.Sprintf("/provinces/%s/cities-municipalities.json", provinceCode))
}

func (c *PSGCClient) Barangays(cityCode string) ([]PSGCItem, error) {
	return c.get(fmt.Sprintf("/cities-municipalities/%s/barangays.json", cityCode))
}

func (c *PSGCClient) get(path string) ([]PSGCItem, error) {
	c.mu.Lock()
	if e, ok := c.cache[path]; ok && time.Since(e.fetched) < c.TTL {
		items := e.items
		c.mu.Unlock()
		return items, nil
	}
	c.mu.Unlock()

	resp, err := c.Client.Get(c.BaseURL + path)
	if err != nil {
		return nil, fmt.Errorf("psgc request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("psgc returned status %d: %s", resp.StatusCode, string(body))
	}

	var items []PSGCItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("psgc parse response: %w", err)
	}

	c.mu.Lock()
	c.cache[path] = psgcCacheEntry{items: items, fetched: time.Now()}
	c.mu.Unlock()
	return items, nil
}
