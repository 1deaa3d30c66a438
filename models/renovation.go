package models

import (
	"fmt"
	"strings"
)

// Tier is the quality level a renovation item is priced at.
type Tier string

const (
	TierBudget   Tier = "Budget"
	TierStandard Tier = "Standard"
	TierPremium  Tier = "Premium"
)

// Tiers lists every tier from cheapest to most expensive.
var Tiers = []Tier{TierBudget, TierStandard, TierPremium}

// ParseTier resolves a tier name case-insensitively.
func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown quality tier %q (want Budget, Standard or Premium)", s)
}

// Unit is how a catalog item is measured.
type Unit string

const (
	UnitArea  Unit = "m²"
	UnitPiece Unit = "piece"
)

// Label is the Norwegian display form of the unit.
func (u Unit) Label() string {
	if u == UnitPiece {
		return "stk"
	}
	return string(u)
}

// CatalogItem is one priced renovation line item.
type CatalogItem struct {
	Category    string           `json:"category" yaml:"-" validate:"required"`
	Name        string           `json:"name" yaml:"name" validate:"required"`
	Unit        Unit             `json:"unit" yaml:"unit" validate:"oneof=m² piece"`
	Description string           `json:"description" yaml:"description"`
	Prices      map[Tier]float64 `json:"prices" yaml:"prices" validate:"len=3,dive,keys,oneof=Budget Standard Premium,endkeys,gt=0"`
}

// UnitCost returns the cost of one unit at the given tier.
func (c CatalogItem) UnitCost(t Tier) (float64, bool) {
	v, ok := c.Prices[t]
	return v, ok
}

// QuantityInput is what a user chooses for an item: a share of the livable
// area for m² items, a count for piece items.
type QuantityInput struct {
	Percent float64 `json:"percent,omitempty" validate:"gte=0,lte=100"`
	Count   int     `json:"count,omitempty" validate:"gte=0,lte=20"`
}

// RenovationSelection is a catalog item marked for renovation, priced at
// the chosen tier and quantity.
type RenovationSelection struct {
	Item      string        `json:"item"`
	Category  string        `json:"category"`
	Unit      Unit          `json:"unit"`
	Tier      Tier          `json:"tier"`
	Input     QuantityInput `json:"input"`
	Quantity  float64       `json:"quantity"`
	UnitCost  float64       `json:"unitCost"`
	TotalCost float64       `json:"totalCost"`
}

// BudgetSummary is the renovation overview for one property.
type BudgetSummary struct {
	PurchasePrice      float64               `json:"purchasePrice"`
	LivableArea        float64               `json:"livableArea"`
	Selections         []RenovationSelection `json:"selections"`
	RenovationCost     float64               `json:"renovationCost"`
	TotalInvestment    float64               `json:"totalInvestment"`
	RenovationShare    *float64              `json:"renovationShare,omitempty"`
	PricePerAreaBefore *float64              `json:"pricePerAreaBefore,omitempty"`
	PricePerAreaAfter  *float64              `json:"pricePerAreaAfter,omitempty"`
}
