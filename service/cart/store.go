package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	cartEntity "meezy.GO/model/entity/cart"
	catalogEntity "meezy.GO/model/entity/catalog"
	storageRepo "meezy.GO/model/repository/storage"
)

// ErrInvalidCustomLine is reported when a custom line is submitted without a
// title or with a non-positive price. The store is left untouched.
var ErrInvalidCustomLine = errors.New("cart: custom line requires a title and a positive price")

// Persister is the slice of the storage repository the store needs.
type Persister interface {
	Save(key string, payload []byte) error
	Load(key string) ([]byte, error)
}

// Store owns the ordered list of cart lines. At most one line exists per
// catalog identity (re-adding merges); custom lines never merge. Every
// mutation is followed by a full serialization to durable storage; storage
// failures degrade to in-memory operation, never a crash.
type Store struct {
	mu    sync.Mutex
	lines []cartEntity.Line
	index map[string]int
	repo  Persister
}

// NewStore rehydrates the cart from storage when present, otherwise starts
// empty. A nil persister means memory-only.
func NewStore(repo Persister) *Store {
	s := &Store{repo: repo, index: map[string]int{}}
	s.rehydrate()
	return s
}

func lineKey(item catalogEntity.Item) string {
	return fmt.Sprintf("item:%d", item.ID)
}

// Add merges-or-inserts a catalog item: an existing line for the same
// identity gets quantity +1, otherwise a new line with quantity 1 is
// appended. The stored item is the cart's own copy.
func (s *Store) Add(item catalogEntity.Item) cartEntity.Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := lineKey(item)
	if i, ok := s.index[key]; ok {
		s.lines[i].Quantity++
		s.persistLocked()
		return s.lines[i]
	}
	line := cartEntity.Line{Key: key, Item: item, Quantity: 1}
	s.lines = append(s.lines, line)
	s.index[key] = len(s.lines) - 1
	s.persistLocked()
	return line
}

// AddCustom inserts a register-synthesized line. The identity is unique for
// the process lifetime, so custom lines never merge with anything.
func (s *Store) AddCustom(title string, price float64, quantity int, size string) (cartEntity.Line, error) {
	title = strings.TrimSpace(title)
	if title == "" || price <= 0 {
		return cartEntity.Line{}, ErrInvalidCustomLine
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line := cartEntity.Line{
		Key: "custom:" + uuid.NewString(),
		Item: catalogEntity.Item{
			Title:             title,
			Price:             price,
			VariantTitle:      size,
			InventoryQuantity: 999,
		},
		Quantity: quantity,
		Type:     cartEntity.TypeCustom,
		Size:     size,
	}
	s.lines = append(s.lines, line)
	s.index[line.Key] = len(s.lines) - 1
	s.persistLocked()
	return line, nil
}

// Remove deletes the line for a key; no-op when absent.
func (s *Store) Remove(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

// UpdateQuantity overwrites a line's quantity. Zero or below behaves exactly
// like Remove.
func (s *Store) UpdateQuantity(key string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(key)
		return
	}
	if i, ok := s.index[key]; ok {
		s.lines[i].Quantity = quantity
		s.persistLocked()
	}
}

// Clear empties the store. Caller owns any operator confirmation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.index = map[string]int{}
	s.persistLocked()
}

// Lines returns a copy of the lines in insertion order.
func (s *Store) Lines() []cartEntity.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cartEntity.Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Contains reports whether a catalog identity already has a line.
func (s *Store) Contains(itemID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[fmt.Sprintf("item:%d", itemID)]
	return ok
}

// Total recomputes the cart total from current state on every call.
func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var sum float64
	for _, l := range s.lines {
		sum += l.Subtotal()
	}
	return sum
}

// ItemCount recomputes the unit count from current state on every call.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) removeLocked(key string) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
	delete(s.index, key)
	for j := i; j < len(s.lines); j++ {
		s.index[s.lines[j].Key] = j
	}
	s.persistLocked()
}

func (s *Store) persistLocked() {
	if s.repo == nil {
		return
	}
	lines := s.lines
	if lines == nil {
		lines = []cartEntity.Line{}
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		log.Printf("cart: serialize failed: %v", err)
		return
	}
	if err := s.repo.Save(storageRepo.CartKey, payload); err != nil {
		log.Printf("cart: persist failed, continuing in memory: %v", err)
	}
}

func (s *Store) rehydrate() {
	if s.repo == nil {
		return
	}
	payload, err := s.repo.Load(storageRepo.CartKey)
	if err != nil {
		log.Printf("cart: rehydrate failed, starting empty: %v", err)
		return
	}
	if len(payload) == 0 {
		return
	}
	var lines []cartEntity.Line
	if err := json.Unmarshal(payload, &lines); err != nil {
		log.Printf("cart: stored cart corrupt, starting empty: %v", err)
		return
	}
	s.lines = lines
	for i, l := range lines {
		s.index[l.Key] = i
	}
}
