package dispatch

import (
	"fmt"
	"strings"
)

// Category groups assets that are dispatched together.
type Category int

const (
	PassiveGenerators Category = iota + 1
	Storages
	Generators
)

// DefaultDeploymentOrder dispatches passive generation first, then storage,
// then dispatchable generation.
var DefaultDeploymentOrder = []Category{PassiveGenerators, Storages, Generators}

func (c Category) String() string {
	switch c {
	case PassiveGenerators:
		return "passive_generators"
	case Storages:
		return "storages"
	case Generators:
		return "generators"
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// ParseCategory converts a configuration name into a Category.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "passive_generators", "passive":
		return PassiveGenerators, nil
	case "storages", "storage":
		return Storages, nil
	case "generators", "generator":
		return Generators, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// validateOrder checks that order names each category exactly once.
func validateOrder(order []Category) error {
	if len(order) != len(DefaultDeploymentOrder) {
		return fmt.Errorf("deployment order must list %d categories, got %d", len(DefaultDeploymentOrder), len(order))
	}
	seen := make(map[Category]bool, len(order))
	for _, c := range order {
		if c < PassiveGenerators || c > Generators {
			return fmt.Errorf("deployment order: invalid %s", c)
		}
		if seen[c] {
			return fmt.Errorf("deployment order: %s listed twice", c)
		}
		seen[c] = true
	}
	return nil
}
