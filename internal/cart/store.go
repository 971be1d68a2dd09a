package cart

import (
	"encoding/json"
	"sync"
)

// Item is one cart line: a product/variant combination and its quantity.
// ID identifies the line, not the product, so the same print in two sizes
// stays in two lines.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Frame     string  `json:"frame,omitempty"`
}

// State is an immutable snapshot of the cart. Total and ItemCount are
// recomputed from Items on every mutation, never adjusted incrementally.
type State struct {
	Items     []Item  `json:"items"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"itemCount"`
}

// Subscriber receives the post-mutation snapshot after every state change
type Subscriber func(State)

// Store holds one session's cart. Mutations recompute derived totals and
// notify subscribers; quantity races between concurrent callers resolve
// last-write-wins.
type Store struct {
	mu          sync.RWMutex
	items       []Item
	subscribers []Subscriber
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{}
}

// AddItem appends a line, or merges quantities when a line with the same ID
// already exists. Incoming quantities below 1 are clamped to 1.
func (s *Store) AddItem(item Item) State {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	return state
}

// RemoveItem removes the line with the given ID. Removing an absent line is
// a no-op, not an error.
func (s *Store) RemoveItem(id string) State {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	return state
}

// UpdateQuantity replaces the line's quantity. A quantity of zero or less
// removes the line entirely; zero-quantity lines never persist.
func (s *Store) UpdateQuantity(id string, quantity int) State {
	if quantity <= 0 {
		return s.RemoveItem(id)
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	return state
}

// Clear resets the cart to the empty state
func (s *Store) Clear() State {
	s.mu.Lock()
	s.items = nil
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	return state
}

// Snapshot returns an immutable copy of the current state
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with the snapshot after every
// mutation. Subscribers cannot be removed; they live as long as the store.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// Restore replaces the cart contents from a previously serialized state,
// dropping lines that would violate the quantity invariant. Totals are
// recomputed, not trusted from the payload.
func (s *Store) Restore(state State) State {
	items := make([]Item, 0, len(state.Items))
	for _, it := range state.Items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		items = append(items, it)
	}

	s.mu.Lock()
	s.items = items
	restored := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(restored)
	return restored
}

func (s *Store) snapshotLocked() State {
	items := make([]Item, len(s.items))
	copy(items, s.items)

	state := State{Items: items}
	for _, it := range items {
		state.Total += it.Price * float64(it.Quantity)
		state.ItemCount += it.Quantity
	}
	return state
}

func (s *Store) notify(state State) {
	s.mu.RLock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}

// MarshalState serializes a snapshot in the client-local persistence format:
// {"items":[...],"total":n,"itemCount":n}
func MarshalState(state State) ([]byte, error) {
	if state.Items == nil {
		state.Items = []Item{}
	}
	return json.Marshal(state)
}

// UnmarshalState parses a serialized snapshot
func UnmarshalState(data []byte) (State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}
	return state, nil
}
