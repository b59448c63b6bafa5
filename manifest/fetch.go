// Package manifest parses a video's available-formats manifest into stream
// descriptors and hands them to the query engine.
package manifest

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/vidq-cli/vidq/constant"
	"github.com/vidq-cli/vidq/filesystem"
	"github.com/vidq-cli/vidq/key"
	"github.com/vidq-cli/vidq/log"
	"github.com/vidq-cli/vidq/network"
	"github.com/vidq-cli/vidq/where"
)

// cacheEntry timestamps a fetched manifest so entries can expire
// individually against the configured lifetime.
type cacheEntry struct {
	FetchedAt time.Time `json:"fetchedAt"`
	Manifest  *Manifest `json:"manifest"`
}

var cacher = gache.New[map[string]*cacheEntry](&gache.Options{
	Path:       where.Manifests(),
	FileSystem: &filesystem.GacheFs{},
})

// Fetch retrieves and parses the manifest at the given URL.
//
// Responses are cached under the cache directory for the configured
// lifetime. Stream URLs on some CDNs expire within minutes, hence the short
// default and the option to disable caching entirely.
func Fetch(url string) (*Manifest, error) {
	lifetime := time.Duration(viper.GetInt(key.ManifestCacheLifetime)) * time.Minute

	if lifetime > 0 {
		if cached := fromCache(url, lifetime); cached != nil {
			log.Debugf("manifest cache hit for %s", url)
			return cached, nil
		}
	}

	m, err := fetch(url)
	if err != nil {
		return nil, err
	}

	if lifetime > 0 {
		store(url, m)
	}

	return m, nil
}

func fetch(url string) (*Manifest, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "application/json")

	client := network.Client
	if viper.GetBool(key.ManifestSpoofTLS) {
		client = network.Spoofed
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch manifest: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}

	return Parse(data)
}

func fromCache(url string, lifetime time.Duration) *Manifest {
	cached, _, err := cacher.Get()
	if err != nil || cached == nil {
		return nil
	}

	entry, ok := cached[url]
	if !ok || time.Since(entry.FetchedAt) > lifetime {
		return nil
	}
	return entry.Manifest
}

func store(url string, m *Manifest) {
	cached, _, err := cacher.Get()
	if err != nil || cached == nil {
		cached = make(map[string]*cacheEntry)
	}

	cached[url] = &cacheEntry{FetchedAt: time.Now(), Manifest: m}
	if err := cacher.Set(cached); err != nil {
		log.Warnf("failed to cache manifest: %v", err)
	}
}
