package web

import (
	"crypto/sha256"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cwbudde/wavescope/analysis"
)

// resultCache memoizes analysis reports for an hour. Keys combine the
// audio content hash with the options, so the same file analyzed with
// different settings caches separately.
type resultCache struct {
	reports *gocache.Cache
}

func newResultCache() *resultCache {
	return &resultCache{reports: gocache.New(time.Hour, 10*time.Minute)}
}

func cacheKey(sum [sha256.Size]byte, opts analysis.Options) string {
	return fmt.Sprintf("%x|fft=%d|win=%s|peaks=%d|filter=%s",
		sum, opts.FFTSize, opts.Window, opts.MaxPeaks, opts.Filter.String())
}

func (rc *resultCache) get(key string) (*analysis.Report, bool) {
	v, ok := rc.reports.Get(key)
	if !ok {
		return nil, false
	}

	rep, ok := v.(*analysis.Report)

	return rep, ok
}

func (rc *resultCache) put(key string, rep *analysis.Report) {
	rc.reports.Set(key, rep, gocache.DefaultExpiration)
}
