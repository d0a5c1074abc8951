package scan

import (
	"context"
	"encoding/json"
	"iter"
	"slices"

	"github.com/matzehuels/depchecker/pkg/cache"
	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/observability"
)

// Cached wraps a Scanner with a content addressed result cache. Entries are
// keyed by scanner name, file fingerprint and the unit's test flag, so a
// file is only parsed again after it changed.
type Cached struct {
	Scanner
	Cache  cache.Cache
	Source *Source
}

// NewCached wraps s. A nil cache disables caching.
func NewCached(s Scanner, c cache.Cache, src *Source) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Cached{Scanner: s, Cache: c, Source: src}
}

// cachedToken is the stored form of one token. The path is taken from the
// unit being scanned.
type cachedToken struct {
	Name string `json:"name"`
	Test bool   `json:"test"`
}

// Scan implements Scanner.
func (c *Cached) Scan(ctx context.Context, u Unit) (iter.Seq[dotted.Name], error) {
	names, _, err := c.ScanWithCacheInfo(ctx, u)
	return names, err
}

// ScanWithCacheInfo scans u and reports whether the result came from the
// cache.
func (c *Cached) ScanWithCacheInfo(ctx context.Context, u Unit) (iter.Seq[dotted.Name], bool, error) {
	content, err := readUnit(c.Source, u)
	if err != nil {
		return nil, false, err
	}
	key, err := cache.ScanKey(c.Name(), content)
	if err != nil {
		names, err := c.Scanner.Scan(ctx, u)
		return names, false, err
	}
	if u.Test {
		key += ":test"
	}

	if data, hit, err := c.Cache.Get(ctx, key); err == nil && hit {
		var stored []cachedToken
		if err := json.Unmarshal(data, &stored); err == nil {
			observability.Cache().OnCacheHit(ctx, "scan")
			return restore(u, stored), true, nil
		}
		// If deserialization fails, fall through to rescan
	}
	observability.Cache().OnCacheMiss(ctx, "scan")

	names, err := c.Scanner.Scan(ctx, u)
	if err != nil {
		return nil, false, err
	}

	collected := slices.Collect(names)
	stored := make([]cachedToken, len(collected))
	for i, n := range collected {
		stored[i] = cachedToken{Name: n.String(), Test: n.IsTest()}
	}
	if data, err := json.Marshal(stored); err == nil {
		if err := c.Cache.Set(ctx, key, data, cache.TTLScan); err == nil {
			observability.Cache().OnCacheSet(ctx, "scan", len(data))
		}
	}
	return slices.Values(collected), false, nil
}

func restore(u Unit, stored []cachedToken) iter.Seq[dotted.Name] {
	out := make([]dotted.Name, len(stored))
	for i, t := range stored {
		out[i] = dotted.FromFile(t.Name, u.Path, t.Test || u.Test)
	}
	return slices.Values(out)
}
