package cart

import (
	"github.com/google/uuid"

	"github.com/noshnavigator/nosh-cli/internal/domain"
)

// Store is the mutable session cart. It guards one invariant: no two
// lines ever share the same (restaurant, item) pair.
type Store struct {
	lines []domain.CartLine
}

// NewStore builds a store over a copy of the given lines.
func NewStore(lines []domain.CartLine) *Store {
	copied := make([]domain.CartLine, len(lines))
	copy(copied, lines)
	return &Store{lines: copied}
}

// Add merges a repeat (restaurant, item) add into the existing line,
// otherwise appends a fresh line with quantity 1 and a new identifier.
func (s *Store) Add(restaurant, item string, price float64) domain.CartLine {
	for i := range s.lines {
		if s.lines[i].Restaurant == restaurant && s.lines[i].Item == item {
			s.lines[i].Quantity++
			return s.lines[i]
		}
	}
	line := domain.CartLine{
		ID:         uuid.New().String(),
		Restaurant: restaurant,
		Item:       item,
		Price:      price,
		Quantity:   1,
	}
	s.lines = append(s.lines, line)
	return line
}

// Remove deletes the line with the identifier; no-op when absent.
func (s *Store) Remove(id string) bool {
	for i := range s.lines {
		if s.lines[i].ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return true
		}
	}
	return false
}

// UpdateQuantity adds delta to a line's quantity. A result of zero or
// below removes the line. The second return reports whether the line
// still exists afterwards.
func (s *Store) UpdateQuantity(id string, delta int) (domain.CartLine, bool) {
	for i := range s.lines {
		if s.lines[i].ID != id {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return domain.CartLine{}, false
		}
		return s.lines[i], true
	}
	return domain.CartLine{}, false
}

// Find returns the line with the identifier.
func (s *Store) Find(id string) (domain.CartLine, bool) {
	for _, line := range s.lines {
		if line.ID == id {
			return line, true
		}
	}
	return domain.CartLine{}, false
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []domain.CartLine {
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the total item quantity, as shown on the cart badge.
func (s *Store) Count() int {
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Subtotal sums price times quantity over all lines.
func (s *Store) Subtotal() float64 {
	total := 0.0
	for _, line := range s.lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.lines = nil
}
