package services

import (
	"fmt"
	"sort"

	"boligbudsjett/catalog"
	"boligbudsjett/models"
)

// Plan is the set of items currently marked for renovation, keyed by item
// name. Marking an item that is already present replaces it. A Plan is not
// safe for concurrent use; its owner serialises access.
type Plan struct {
	selections map[string]models.RenovationSelection
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{selections: make(map[string]models.RenovationSelection)}
}

// Mark inserts or replaces a selection.
func (p *Plan) Mark(sel models.RenovationSelection) {
	p.selections[sel.Item] = sel
}

// Select looks the item up in cat, prices it and marks it.
func (p *Plan) Select(cat *catalog.Catalog, name string, tier models.Tier, input models.QuantityInput, livableArea float64) (models.RenovationSelection, error) {
	item, ok := cat.Lookup(name)
	if !ok {
		return models.RenovationSelection{}, fmt.Errorf("%w: %q", ErrUnknownItem, name)
	}
	sel := ComputeSelection(item, tier, input, livableArea)
	p.Mark(sel)
	return sel, nil
}

// Unmark removes an item and reports whether it was present.
func (p *Plan) Unmark(name string) bool {
	if _, ok := p.selections[name]; !ok {
		return false
	}
	delete(p.selections, name)
	return true
}

func (p *Plan) Has(name string) bool {
	_, ok := p.selections[name]
	return ok
}

func (p *Plan) Get(name string) (models.RenovationSelection, bool) {
	sel, ok := p.selections[name]
	return sel, ok
}

func (p *Plan) Len() int {
	return len(p.selections)
}

// Snapshot returns the selections in catalog order. Items the catalog does
// not know sort last, by name.
func (p *Plan) Snapshot(cat *catalog.Catalog) []models.RenovationSelection {
	out := make([]models.RenovationSelection, 0, len(p.selections))
	pos := make(map[string]int, len(p.selections))
	for name, sel := range p.selections {
		out = append(out, sel)
		pos[name] = cat.Position(name)
	}

	sort.Slice(out, func(i, j int) bool {
		pi, pj := pos[out[i].Item], pos[out[j].Item]
		switch {
		case pi < 0 && pj < 0:
			return out[i].Item < out[j].Item
		case pi < 0:
			return false
		case pj < 0:
			return true
		}
		return pi < pj
	})
	return out
}

// Recompute reprices every selection against a new livable area. Piece
// items keep their quantity; area items are rescaled from their percent.
func (p *Plan) Recompute(cat *catalog.Catalog, livableArea float64) {
	for name, sel := range p.selections {
		item, ok := cat.Lookup(name)
		if !ok {
			continue
		}
		p.selections[name] = ComputeSelection(item, sel.Tier, sel.Input, livableArea)
	}
}

// Clone returns an independent copy of the plan.
func (p *Plan) Clone() *Plan {
	c := NewPlan()
	for name, sel := range p.selections {
		c.selections[name] = sel
	}
	return c
}
