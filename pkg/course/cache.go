package course

import (
	"time"

	"github.com/mpapenbr/handicap-calculator-go/pkg/utils/cache/loadercache"
)

// DefaultSource is the cache key for the embedded catalog.
const DefaultSource = ""

// NewCatalogCache caches catalogs by file path.
// The key DefaultSource yields the embedded catalog.
func NewCatalogCache(expiration time.Duration) loadercache.Cache[string, Catalog] {
	return loadercache.New(
		loadercache.WithExpiration[string, Catalog](expiration),
		loadercache.WithLoader(func(path string) (*Catalog, error) {
			if path == DefaultSource {
				return Default(), nil
			}
			return LoadFile(path)
		}),
	)
}
