package services

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"boligbudsjett/catalog"
	"boligbudsjett/models"
	"boligbudsjett/utils"
)

// Bounds for piece counts.
const (
	MinPieceCount = 1
	MaxPieceCount = 20
)

// ErrUnknownItem is returned when a selection names an item that is not in
// the catalog.
var ErrUnknownItem = errors.New("unknown renovation item")

// SelectionRequest is a user's choice for one item as it arrives from a
// host. Percent and Count default to 100 % and one piece when omitted.
type SelectionRequest struct {
	Item    string   `json:"item" validate:"required"`
	Tier    string   `json:"tier" validate:"required"`
	Percent *float64 `json:"percent,omitempty" validate:"omitempty,gte=0,lte=100"`
	Count   *int     `json:"count,omitempty" validate:"omitempty,gte=1,lte=20"`
}

// Resolve validates req against the catalog and returns the item, tier and
// quantity input it describes.
func (req SelectionRequest) Resolve(cat *catalog.Catalog, v *utils.Validator) (models.CatalogItem, models.Tier, models.QuantityInput, error) {
	if err := v.Struct(req); err != nil {
		return models.CatalogItem{}, "", models.QuantityInput{}, err
	}
	item, ok := cat.Lookup(req.Item)
	if !ok {
		return models.CatalogItem{}, "", models.QuantityInput{}, fmt.Errorf("%w: %q", ErrUnknownItem, req.Item)
	}
	tier, err := models.ParseTier(req.Tier)
	if err != nil {
		return models.CatalogItem{}, "", models.QuantityInput{}, &utils.ValidationError{Fields: []string{err.Error()}}
	}

	input := models.QuantityInput{Percent: 100, Count: MinPieceCount}
	if req.Percent != nil {
		input.Percent = *req.Percent
	}
	if req.Count != nil {
		input.Count = *req.Count
	}
	return item, tier, input, nil
}

// ComputeSelection prices one item. Area items cover percent of the livable
// area, piece items a count. Inputs outside their range are clamped, and a
// selection with quantity 0 is still returned so it stays listed.
func ComputeSelection(item models.CatalogItem, tier models.Tier, input models.QuantityInput, livableArea float64) models.RenovationSelection {
	unitCost, _ := item.UnitCost(tier)

	var quantity float64
	switch item.Unit {
	case models.UnitPiece:
		input.Count = clampInt(input.Count, MinPieceCount, MaxPieceCount)
		quantity = float64(input.Count)
	default:
		input.Percent = clamp(input.Percent, 0, 100)
		if livableArea > 0 {
			quantity = livableArea * input.Percent / 100
		}
	}

	return models.RenovationSelection{
		Item:      item.Name,
		Category:  item.Category,
		Unit:      item.Unit,
		Tier:      tier,
		Input:     input,
		Quantity:  quantity,
		UnitCost:  unitCost,
		TotalCost: unitCost * quantity,
	}
}

// Aggregate is the total renovation cost of the selections. No rounding is
// applied; that happens at display time.
func Aggregate(selections []models.RenovationSelection) float64 {
	if len(selections) == 0 {
		return 0
	}
	costs := make([]float64, len(selections))
	for i, s := range selections {
		costs[i] = s.TotalCost
	}
	return floats.Sum(costs)
}

// Summarize builds the renovation overview for a property. Price per m² is
// left nil when the livable area is unknown, and the renovation share when
// the purchase price is.
func Summarize(record models.PropertyRecord, selections []models.RenovationSelection) models.BudgetSummary {
	price := record.PurchasePrice()
	area := record.LivableArea()
	renovation := Aggregate(selections)

	summary := models.BudgetSummary{
		PurchasePrice:   price,
		LivableArea:     area,
		Selections:      append([]models.RenovationSelection(nil), selections...),
		RenovationCost:  renovation,
		TotalInvestment: price + renovation,
	}
	if summary.Selections == nil {
		summary.Selections = []models.RenovationSelection{}
	}

	if price > 0 {
		share := renovation / price
		summary.RenovationShare = &share
	}
	if area > 0 {
		before := price / area
		after := (price + renovation) / area
		summary.PricePerAreaBefore = &before
		summary.PricePerAreaAfter = &after
	}
	return summary
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
