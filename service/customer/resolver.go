// Package customer resolves the checkout customer from a partial email.
// Typing is debounced upstream; this package owns the search round-trip,
// the staleness guard and the selection slot the checkout reads from.
package customer

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	customerEntity "meezy.GO/model/entity/customer"
)

// State is where the customer picker currently stands.
type State int

const (
	// StateInactive means the query is too short to search with.
	StateInactive State = iota
	// StateSearching means a lookup is in flight or matches await a pick.
	StateSearching
	// StateNone means the backend answered and nobody matched.
	StateNone
	// StateMatched means a customer sits in the selection slot.
	StateMatched
	// StateFailed means the lookup itself failed; the operator must not
	// read it as "no such customer".
	StateFailed
)

// Resolution is one answered customer search, stamped with the sequence
// number it was issued under.
type Resolution struct {
	Seq     uint64
	Query   string
	Matches []customerEntity.Customer
	Err     error
}

// Searcher is the backend lookup the resolver runs queries through.
type Searcher interface {
	SearchCustomers(ctx context.Context, email string) ([]customerEntity.Customer, error)
}

// Resolver tracks the customer search and the selected customer. Responses
// may land out of order; only the newest issued query is allowed to change
// what the operator sees, and a manual pick fences off every response that
// was issued before it.
type Resolver struct {
	source Searcher

	issued    atomic.Uint64
	delivered atomic.Uint64

	mu       sync.Mutex
	state    State
	query    string
	matches  []customerEntity.Customer
	selected *customerEntity.Customer
	lastErr  error
}

func NewResolver(source Searcher) *Resolver {
	return &Resolver{source: source}
}

// Search runs a lookup for the given partial email. A query that differs
// from the selected customer's email drops the selection first.
func (r *Resolver) Search(ctx context.Context, query string) Resolution {
	query = strings.TrimSpace(query)
	seq := r.issued.Add(1)

	r.mu.Lock()
	if r.selected != nil && !strings.EqualFold(query, r.selected.Email) {
		r.selected = nil
	}
	r.query = query
	r.state = StateSearching
	r.mu.Unlock()

	matches, err := r.source.SearchCustomers(ctx, query)
	return Resolution{Seq: seq, Query: query, Matches: matches, Err: err}
}

// Inactive tells the resolver the query fell below the minimum length.
// Anything still in flight is made stale and the picker goes quiet.
func (r *Resolver) Inactive() {
	r.fence()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = StateInactive
	r.query = ""
	r.matches = nil
	r.selected = nil
	r.lastErr = nil
}

// Apply takes a settled resolution if it is still current. A single match
// auto-selects; several matches wait for a manual pick; zero is a true
// no-match. Reports whether the resolution was applied.
func (r *Resolver) Apply(res Resolution) bool {
	if res.Seq < r.issued.Load() {
		return false
	}
	for {
		cur := r.delivered.Load()
		if res.Seq <= cur {
			return false
		}
		if r.delivered.CompareAndSwap(cur, res.Seq) {
			break
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastErr = res.Err
	if res.Err != nil {
		r.matches = nil
		r.state = StateFailed
		return true
	}
	r.matches = res.Matches
	switch len(res.Matches) {
	case 0:
		r.selected = nil
		r.state = StateNone
	case 1:
		m := res.Matches[0]
		r.selected = &m
		r.state = StateMatched
	default:
		r.state = StateSearching
	}
	return true
}

// Select is a manual pick from the surfaced list. It fills the slot,
// rewrites the query to the customer's email and fences off every response
// issued before the pick.
func (r *Resolver) Select(c customerEntity.Customer) {
	r.fence()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = &c
	r.query = c.Email
	r.matches = nil
	r.state = StateMatched
}

// Reset clears the picker entirely, used when the operator switches
// between existing and new customer.
func (r *Resolver) Reset() {
	r.Inactive()
}

// Selected returns the customer in the slot, if any.
func (r *Resolver) Selected() (customerEntity.Customer, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.selected == nil {
		return customerEntity.Customer{}, false
	}
	return *r.selected, true
}

// Matches returns a copy of the current candidate list.
func (r *Resolver) Matches() []customerEntity.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]customerEntity.Customer, len(r.matches))
	copy(out, r.matches)
	return out
}

func (r *Resolver) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Resolver) Query() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.query
}

// Err reports the failure of the last applied resolution, if any.
func (r *Resolver) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// fence advances the sequence past everything in flight so earlier
// responses can no longer be applied.
func (r *Resolver) fence() {
	seq := r.issued.Add(1)
	for {
		cur := r.delivered.Load()
		if seq <= cur || r.delivered.CompareAndSwap(cur, seq) {
			return
		}
	}
}
