package catalog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"meezy.GO/core/cache"
	catalogEntity "meezy.GO/model/entity/catalog"
	"meezy.GO/service/backend"
)

// Outcome classifies a resolution for operator messaging. Failures never
// leave the resolver as errors; they degrade to an empty result plus one of
// these codes.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeConnectivity
	OutcomeServer
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNotFound:
		return "not_found"
	case OutcomeConnectivity:
		return "connectivity"
	case OutcomeServer:
		return "server"
	default:
		return "ok"
	}
}

// Resolution is a ranked, deduplicated result set stamped with the query
// that produced it and a monotonic sequence number. A resolution whose
// sequence number is not the latest issued must never drive a cart mutation;
// Deliver enforces that.
type Resolution struct {
	Seq     uint64
	Query   Query
	Items   []catalogEntity.Item
	Outcome Outcome
}

// CatalogSource is the slice of the backend client the resolver needs.
type CatalogSource interface {
	LookupByCode(ctx context.Context, code string) ([]catalogEntity.Item, error)
	FetchProducts(ctx context.Context, limit int) ([]catalogEntity.Item, error)
}

// Resolver turns settled queries into ranked result sets with a two-tier
// strategy: a point lookup for code-like queries, then a cached full-snapshot
// local filter.
type Resolver struct {
	source        CatalogSource
	snapshotLimit int
	snapshotTTL   time.Duration
	local         *cache.Cache
	redis         SnapshotCache

	issued    atomic.Uint64
	delivered atomic.Uint64
}

func NewResolver(source CatalogSource) *Resolver {
	return &Resolver{
		source:        source,
		snapshotLimit: 10000,
		snapshotTTL:   30 * time.Second,
		local:         cache.NewCache(),
	}
}

// SetSnapshotLimit overrides the fallback fetch page size.
func (r *Resolver) SetSnapshotLimit(n int) {
	if n > 0 {
		r.snapshotLimit = n
	}
}

// SetSnapshotTTL overrides how long the fallback snapshot is reused.
func (r *Resolver) SetSnapshotTTL(d time.Duration) {
	if d > 0 {
		r.snapshotTTL = d
	}
}

// SetSharedCache attaches a shared snapshot tier (redis) on top of the
// in-process one. Nil is fine and means local-only.
func (r *Resolver) SetSharedCache(c SnapshotCache) {
	r.redis = c
}

// Resolve runs one resolution. It stamps the sequence number at issue time,
// so callers may run it concurrently and let Deliver arbitrate afterwards.
func (r *Resolver) Resolve(ctx context.Context, raw string) Resolution {
	seq := r.issued.Add(1)
	q := Classify(raw)
	res := Resolution{Seq: seq, Query: q}

	if q.Class == ClassExactCode {
		items, err := r.source.LookupByCode(ctx, q.Raw)
		if err == nil && len(items) > 0 {
			// Server-provided order wins on the fast path.
			res.Items = items
			return res
		}
		// Fast-path miss or failure is never an error: fall through.
	}

	snapshot, err := r.snapshot(ctx)
	if err != nil {
		res.Outcome = classifyFailure(err)
		res.Items = []catalogEntity.Item{}
		return res
	}

	matched := filterSnapshot(snapshot, q.Raw)
	rankItems(matched, q.Raw)
	res.Items = matched
	if len(matched) == 0 {
		res.Outcome = OutcomeNotFound
	}
	return res
}

// Deliver is the staleness guard. It returns false when a newer resolution
// has been issued or delivered; such a result must be discarded, not handed
// to consumers. An in-flight fallback must never overwrite a decision made
// from a more recent result.
func (r *Resolver) Deliver(res Resolution) bool {
	if res.Seq < r.issued.Load() {
		return false
	}
	for {
		cur := r.delivered.Load()
		if res.Seq <= cur {
			return false
		}
		if r.delivered.CompareAndSwap(cur, res.Seq) {
			return true
		}
	}
}

const snapshotKey = "catalog:snapshot"

// snapshot returns the cached catalog snapshot, refreshing it when expired.
func (r *Resolver) snapshot(ctx context.Context) ([]catalogEntity.Item, error) {
	if v, ok := r.local.Get(snapshotKey); ok {
		if items, ok := v.([]catalogEntity.Item); ok {
			return items, nil
		}
	}
	if r.redis != nil {
		if items, ok := r.redis.Get(ctx, snapshotKey); ok {
			r.local.Set(snapshotKey, items, int64(r.snapshotTTL/time.Second), []string{"catalog"})
			return items, nil
		}
	}
	return r.refreshSnapshot(ctx)
}

// WarmSnapshot refreshes the snapshot unconditionally. The cron warm job
// calls this so the first scan of a shift never pays the full fetch.
func (r *Resolver) WarmSnapshot(ctx context.Context) error {
	_, err := r.refreshSnapshot(ctx)
	return err
}

func (r *Resolver) refreshSnapshot(ctx context.Context) ([]catalogEntity.Item, error) {
	items, err := r.source.FetchProducts(ctx, r.snapshotLimit)
	if err != nil {
		return nil, err
	}
	ttl := int64(r.snapshotTTL / time.Second)
	r.local.Set(snapshotKey, items, ttl, []string{"catalog"})
	if r.redis != nil {
		r.redis.Set(ctx, snapshotKey, items, r.snapshotTTL)
	}
	return items, nil
}

// filterSnapshot applies the fallback match rules: case-insensitive substring
// on title or SKU, as-is substring on barcode. Items without a title are
// never listed.
func filterSnapshot(items []catalogEntity.Item, query string) []catalogEntity.Item {
	lq := strings.ToLower(query)
	matched := make([]catalogEntity.Item, 0, 16)
	for _, it := range items {
		if it.Title == "" {
			continue
		}
		switch {
		case strings.Contains(strings.ToLower(it.Title), lq):
		case it.SKU != "" && strings.Contains(strings.ToLower(it.SKU), lq):
		case it.Barcode != "" && strings.Contains(it.Barcode, query):
		default:
			continue
		}
		matched = append(matched, it)
	}
	return matched
}

// rankItems sorts by strict precedence: exact barcode equality, exact SKU
// equality, exact case-insensitive title equality, in-stock before
// out-of-stock, original fetch order (stable sort keeps the rest).
func rankItems(items []catalogEntity.Item, query string) {
	sort.SliceStable(items, func(i, j int) bool {
		return rankOf(items[i], query) < rankOf(items[j], query)
	})
}

func rankOf(it catalogEntity.Item, query string) int {
	switch {
	case it.Barcode != "" && it.Barcode == query:
		return 0
	case it.SKU != "" && it.SKU == query:
		return 1
	case strings.EqualFold(it.Title, query):
		return 2
	case it.InventoryQuantity > 0:
		return 3
	default:
		return 4
	}
}

func classifyFailure(err error) Outcome {
	switch {
	case errors.Is(err, backend.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, backend.ErrUnavailable):
		return OutcomeConnectivity
	default:
		return OutcomeServer
	}
}
