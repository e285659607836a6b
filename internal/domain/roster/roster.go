package roster

import (
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyRoster = errors.New("roster must contain at least one name")
var ErrDuplicateName = errors.New("roster contains a duplicate name")
var ErrBlankName = errors.New("roster contains a blank name")

// DefaultNames is the rotation used when no roster is configured.
var DefaultNames = []string{
	"Leila",
	"Juliana",
	"Karine",
	"Alessandra",
	"Jhenifer",
	"Vanessa",
	"Luana",
	"Tayna",
}

// Roster is the ordered list of organists cycled through by the generator.
type Roster struct {
	names []string
}

// New validates names and returns a Roster preserving their order.
func New(names []string) (Roster, error) {
	if len(names) == 0 {
		return Roster{}, ErrEmptyRoster
	}

	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			return Roster{}, fmt.Errorf("%w at position %d", ErrBlankName, i)
		}
		if _, ok := seen[n]; ok {
			return Roster{}, fmt.Errorf("%w: %q", ErrDuplicateName, n)
		}
		seen[n] = struct{}{}
		cleaned = append(cleaned, n)
	}
	return Roster{names: cleaned}, nil
}

// Default returns the built-in roster.
func Default() Roster {
	r, err := New(DefaultNames)
	if err != nil {
		panic(err) // DefaultNames is a constant list
	}
	return r
}

func (r Roster) Len() int { return len(r.names) }

// At returns the assignee for running index i, wrapping modulo the roster size.
func (r Roster) At(i int) string {
	n := len(r.names)
	return r.names[((i%n)+n)%n]
}

// Names returns a copy of the names in rotation order.
func (r Roster) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
