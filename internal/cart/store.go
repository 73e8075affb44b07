package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// LineItem is one product entry in the cart with its quantity.
type LineItem struct {
	ProductID   string
	Name        string
	UnitPrice   decimal.Decimal
	Quantity    int
	Image       string
	Description string
}

// Snapshot is an immutable view of the cart handed to observers and readers.
type Snapshot struct {
	Items     []LineItem
	ItemCount int
	Subtotal  decimal.Decimal
}

// Observer receives the cart snapshot after every mutation.
type Observer func(Snapshot)

// Store holds the line items for a single browser session. Display order is
// insertion order; product ids are unique within the cart. All mutations are
// serialized so interleaving request handlers cannot corrupt totals.
type Store struct {
	mu        sync.Mutex
	items     []LineItem
	observers []Observer
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Subscribe registers an observer that is invoked with a fresh snapshot after
// each mutation.
func (s *Store) Subscribe(fn Observer) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// AddItem merges the product into the cart: an existing line item has its
// quantity incremented, otherwise the item is appended. Quantities below one
// default to one.
func (s *Store) AddItem(item LineItem, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	merged := false
	for i := range s.items {
		if s.items[i].ProductID == item.ProductID {
			s.items[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = qty
		s.items = append(s.items, item)
	}
	s.notifyLocked()
}

// UpdateQuantity sets the quantity for the product. A quantity of zero or
// less removes the line item; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(productID string, qty int) {
	s.mu.Lock()
	if qty <= 0 {
		s.removeLocked(productID)
		s.notifyLocked()
		return
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = qty
			break
		}
	}
	s.notifyLocked()
}

// RemoveItem drops the product from the cart if present.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	s.removeLocked(productID)
	s.notifyLocked()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
}

// TotalItemCount sums quantities across all line items.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countLocked(s.items)
}

// TotalPrice sums unit price times quantity across all line items. This is
// the pre-tax subtotal; no rounding happens here.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotalLocked(s.items)
}

// Snapshot returns a copy of the current cart state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotLocked(s.items)
}

func (s *Store) removeLocked(productID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// notifyLocked releases the lock and fans the snapshot out to observers, so a
// handler reacting to the change can read the store again without deadlock.
func (s *Store) notifyLocked() {
	snap := snapshotLocked(s.items)
	observers := make([]Observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func snapshotLocked(items []LineItem) Snapshot {
	copied := make([]LineItem, len(items))
	copy(copied, items)
	return Snapshot{
		Items:     copied,
		ItemCount: countLocked(items),
		Subtotal:  subtotalLocked(items),
	}
}

func countLocked(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

func subtotalLocked(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}
