package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPSGCRegions(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		require.Equal(t, "/regions.json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"code":"130000000","name":"NCR"},{"code":"010000000","name":"Region I"}]`))
	}))
	defer srv.Close()

	c := NewPSGCClient(srv.URL, time.Hour)

	items, err := c.Regions()
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "130000000", items[0].Code)
	require.Equal(t, "NCR", items[0].Name)

	// second call is served from the cache
	_, err = c.Regions()
	require.NoError(t, err)
	require.Equal(t, 1, hits)
}

func TestPSGCCacheExpiry(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewPSGCClient(srv.URL, 1*time.Nanosecond)

	_, err := c.Regions()
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = c.Regions()
	require.NoError(t, err)
	require.Equal(t, 2, hits)
}

func TestPSGCBarangaysPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cities-municipalities/137404000/barangays.json", r.URL.Path)
		_, _ = w.Write([]byte(`[{"code":"137404001","name":"Addition Hills"}]`))
	}))
	defer srv.Close()

	c := NewPSGCClient(srv.URL, time.Hour)
	items, err := c.Barangays("137404000")
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestPSGCUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewPSGCClient(srv.URL, time.Hour)
	_, err := c.Regions()
	require.Error(t, err)
}
