package api

import (
	"net/http"
	"time"

	"github.com/prachi-pandey-github/rest-api-wimbledon/internal/adapters/cache"
)

// CacheAdminHandler exposes the cache backend's introspection and the
// prefix invalidation operation. Clearing is unauthenticated; front it with
// an authenticating proxy when exposed beyond a trusted network.
type CacheAdminHandler struct {
	store cache.Store
	cfg   Config
}

// NewCacheAdminHandler creates a new cache admin handler.
func NewCacheAdminHandler(store cache.Store, cfg Config) *CacheAdminHandler {
	return &CacheAdminHandler{store: store, cfg: cfg}
}

// HandleStats handles GET /api/cache/stats.
func (h *CacheAdminHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeRouteNotFound(w)
		return
	}

	stats := h.store.Stats(r.Context())
	total := 0
	for _, n := range stats.PrefixCounts {
		total += n
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cache_enabled":      stats.Enabled,
		"backend":            stats.Backend,
		"hits":               stats.Hits,
		"misses":             stats.Misses,
		"hit_rate":           stats.HitRate(),
		"cache_counts":       stats.PrefixCounts,
		"total_cached_items": total,
		"ttl_configuration": map[string]int{
			"wimbledon_data":  int(h.cfg.RecordTTL / time.Second),
			"available_years": int(h.cfg.YearsTTL / time.Second),
			"health_check":    int(h.cfg.HealthTTL / time.Second),
		},
		"retrieved_at": time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleClear handles POST /api/cache/clear by invalidating every known
// prefix.
func (h *CacheAdminHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeRouteNotFound(w)
		return
	}

	prefixes := KnownPrefixes()
	cleared := 0
	for _, prefix := range prefixes {
		cleared += h.store.InvalidatePrefix(r.Context(), prefix+":*")
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"cleared":  cleared,
		"prefixes": prefixes,
	})
}
