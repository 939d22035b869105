package store

import "fmt"

// Collection names one of the four cached record sets
type Collection string

const (
	Inventory Collection = "inventory"
	Orders    Collection = "orders"
	Laborers  Collection = "laborers"
	Expenses  Collection = "expenses"
)

// AllCollections lists every collection in fetch order
var AllCollections = []Collection{Inventory, Orders, Laborers, Expenses}

// ConsistencyPolicy picks which collections are refetched after a write
type ConsistencyPolicy interface {
	Name() string
	Collections(mutated Collection) []Collection
}

// FullReload refetches all four collections after every write
type FullReload struct{}

func (FullReload) Name() string { return "full" }

func (FullReload) Collections(Collection) []Collection {
	return AllCollections
}

// CoupledReload refetches the written collection, plus inventory after an
// order since the server adjusts stock when one is placed
type CoupledReload struct{}

func (CoupledReload) Name() string { return "coupled" }

func (CoupledReload) Collections(mutated Collection) []Collection {
	if mutated == Orders {
		return []Collection{Orders, Inventory}
	}
	return []Collection{mutated}
}

// ParsePolicy maps a configuration value onto a policy
func ParsePolicy(name string) (ConsistencyPolicy, error) {
	switch name {
	case "", "full":
		return FullReload{}, nil
	case "coupled":
		return CoupledReload{}, nil
	}
	return nil, fmt.Errorf("unknown consistency policy %q", name)
}
