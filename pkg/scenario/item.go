package scenario

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyItemName = errors.New("item name is empty")
	ErrNegativeStat  = errors.New("item value and weight must not be negative")
)

// Item is a collectible object. Items are immutable values. ID identifies the
// item instance and is preserved by Clone, so the same logical item carries
// the same ID in every working copy of a graph.
type Item struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Value  int       `json:"value"`  // points
	Weight int       `json:"weight"` // kg
}

// NewItem creates an item with a fresh instance ID
func NewItem(name string, value, weight int) (Item, error) {
	name = truncate(strings.TrimSpace(name), MaxNameLength)
	if name == "" {
		return Item{}, ErrEmptyItemName
	}
	if value < 0 || weight < 0 {
		return Item{}, fmt.Errorf("%w: %s (value %d, weight %d)", ErrNegativeStat, name, value, weight)
	}
	return Item{
		ID:     uuid.New(),
		Name:   name,
		Value:  value,
		Weight: weight,
	}, nil
}

func (it Item) String() string {
	return fmt.Sprintf("%s (%d pts, %d kg)", it.Name, it.Value, it.Weight)
}
