package services

import (
	"errors"
	"math"
	"testing"

	"boligbudsjett/catalog"
	"boligbudsjett/models"
	"boligbudsjett/utils"
)

func mustItem(t *testing.T, cat *catalog.Catalog, name string) models.CatalogItem {
	t.Helper()
	item, ok := cat.Lookup(name)
	if !ok {
		t.Fatalf("catalog has no item %q", name)
	}
	return item
}

func TestComputeSelectionAreaItem(t *testing.T) {
	cat := catalog.Default()
	bath := mustItem(t, cat, "Nytt bad")

	sel := ComputeSelection(bath, models.TierStandard, models.QuantityInput{Percent: 100}, 70)
	if sel.Quantity != 70 {
		t.Errorf("Quantity: got %.2f, want 70", sel.Quantity)
	}
	if sel.UnitCost != 25000 {
		t.Errorf("UnitCost: got %.2f, want 25000", sel.UnitCost)
	}
	if sel.TotalCost != 1750000 {
		t.Errorf("TotalCost: got %.2f, want 1750000", sel.TotalCost)
	}
	if sel.Category != "Våtrom" || sel.Unit != models.UnitArea {
		t.Errorf("unexpected category/unit: %q %q", sel.Category, sel.Unit)
	}
}

func TestComputeSelectionPieceItem(t *testing.T) {
	cat := catalog.Default()
	windows := mustItem(t, cat, "Nye vinduer")

	sel := ComputeSelection(windows, models.TierBudget, models.QuantityInput{Count: 4}, 70)
	if sel.Quantity != 4 {
		t.Errorf("Quantity: got %.2f, want 4", sel.Quantity)
	}
	if sel.TotalCost != 24000 {
		t.Errorf("TotalCost: got %.2f, want 24000", sel.TotalCost)
	}
}

func TestComputeSelectionClampsInputs(t *testing.T) {
	cat := catalog.Default()
	paint := mustItem(t, cat, "Maling av vegger")
	doors := mustItem(t, cat, "Nye dører")

	tests := []struct {
		name     string
		item     models.CatalogItem
		input    models.QuantityInput
		wantQty  float64
		wantCost float64
	}{
		{"percent above 100", paint, models.QuantityInput{Percent: 150}, 80, 80 * 300},
		{"negative percent", paint, models.QuantityInput{Percent: -5}, 0, 0},
		{"half the area", paint, models.QuantityInput{Percent: 50}, 40, 40 * 300},
		{"count below one", doors, models.QuantityInput{Count: 0}, 1, 5000},
		{"count above twenty", doors, models.QuantityInput{Count: 25}, 20, 20 * 5000},
	}

	for _, tt := range tests {
		sel := ComputeSelection(tt.item, models.TierStandard, tt.input, 80)
		if sel.Quantity != tt.wantQty {
			t.Errorf("%s: Quantity = %.2f; want %.2f", tt.name, sel.Quantity, tt.wantQty)
		}
		if sel.TotalCost != tt.wantCost {
			t.Errorf("%s: TotalCost = %.2f; want %.2f", tt.name, sel.TotalCost, tt.wantCost)
		}
	}
}

func TestComputeSelectionWithoutAreaStaysListed(t *testing.T) {
	cat := catalog.Default()
	floor := mustItem(t, cat, "Nytt gulv")

	sel := ComputeSelection(floor, models.TierPremium, models.QuantityInput{Percent: 100}, 0)
	if sel.Quantity != 0 || sel.TotalCost != 0 {
		t.Errorf("want zero quantity and cost, got %.2f / %.2f", sel.Quantity, sel.TotalCost)
	}
	if sel.UnitCost != 2000 {
		t.Errorf("UnitCost: got %.2f, want 2000", sel.UnitCost)
	}
	if sel.Item != "Nytt gulv" {
		t.Errorf("Item: got %q", sel.Item)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	sels := []models.RenovationSelection{
		{Item: "a", TotalCost: 1750000},
		{Item: "b", TotalCost: 24000},
		{Item: "c", TotalCost: 0.1},
		{Item: "d", TotalCost: 0.2},
		{Item: "e", TotalCost: 33333.33},
	}
	reversed := make([]models.RenovationSelection, len(sels))
	for i, s := range sels {
		reversed[len(sels)-1-i] = s
	}

	a, b := Aggregate(sels), Aggregate(reversed)
	if math.Abs(a-b) > 1e-6 {
		t.Errorf("Aggregate depends on order: %.6f vs %.6f", a, b)
	}
	if math.Abs(a-1807333.63) > 1e-6 {
		t.Errorf("Aggregate = %.6f; want 1807333.63", a)
	}
	if Aggregate(nil) != 0 {
		t.Errorf("Aggregate(nil) should be 0")
	}
}

func TestSummarize(t *testing.T) {
	price := int64(4000000)
	area := 70.0
	record := models.PropertyRecord{Price: &price, BRAInternal: &area}
	sels := []models.RenovationSelection{
		{Item: "Nytt bad", TotalCost: 1750000},
		{Item: "Nye vinduer", TotalCost: 24000},
	}

	s := Summarize(record, sels)
	if s.PurchasePrice != 4000000 {
		t.Errorf("PurchasePrice: got %.0f", s.PurchasePrice)
	}
	if s.RenovationCost != 1774000 {
		t.Errorf("RenovationCost: got %.0f, want 1774000", s.RenovationCost)
	}
	if s.TotalInvestment != 5774000 {
		t.Errorf("TotalInvestment: got %.0f, want 5774000", s.TotalInvestment)
	}
	if s.PricePerAreaBefore == nil || math.Abs(*s.PricePerAreaBefore-4000000.0/70) > 1e-9 {
		t.Errorf("PricePerAreaBefore: got %v", s.PricePerAreaBefore)
	}
	if s.PricePerAreaAfter == nil || math.Abs(*s.PricePerAreaAfter-5774000.0/70) > 1e-9 {
		t.Errorf("PricePerAreaAfter: got %v", s.PricePerAreaAfter)
	}
	if s.RenovationShare == nil || math.Abs(*s.RenovationShare-0.4435) > 1e-9 {
		t.Errorf("RenovationShare: got %v", s.RenovationShare)
	}
}

func TestSummarizeWithoutAreaOrPrice(t *testing.T) {
	s := Summarize(models.PropertyRecord{}, nil)
	if s.PricePerAreaBefore != nil || s.PricePerAreaAfter != nil {
		t.Errorf("price per area should be undefined without an area")
	}
	if s.RenovationShare != nil {
		t.Errorf("renovation share should be undefined without a price")
	}
	if s.Selections == nil {
		t.Errorf("Selections should be an empty list, not nil")
	}
	if got := utils.FormatNOKPtr(s.PricePerAreaAfter); got != utils.NotAvailable {
		t.Errorf("display: got %q, want %q", got, utils.NotAvailable)
	}
}

func TestSelectionRequestResolve(t *testing.T) {
	cat := catalog.Default()
	v := utils.NewValidator()
	pct := func(f float64) *float64 { return &f }
	cnt := func(n int) *int { return &n }

	item, tier, input, err := SelectionRequest{Item: "Nytt bad", Tier: "premium"}.Resolve(cat, v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Name != "Nytt bad" || tier != models.TierPremium {
		t.Errorf("got %q/%q", item.Name, tier)
	}
	if input.Percent != 100 || input.Count != 1 {
		t.Errorf("defaults not applied: %+v", input)
	}

	_, _, input, err = SelectionRequest{Item: "Nye dører", Tier: "Budget", Count: cnt(3)}.Resolve(cat, v)
	if err != nil || input.Count != 3 {
		t.Errorf("count: got %+v, err %v", input, err)
	}

	bad := []SelectionRequest{
		{Item: "Nytt bad", Tier: "Luxury"},
		{Item: "Nytt bad", Tier: "Standard", Percent: pct(120)},
		{Item: "Nye dører", Tier: "Standard", Count: cnt(21)},
		{Tier: "Standard"},
	}
	for _, req := range bad {
		_, _, _, err := req.Resolve(cat, v)
		var vErr *utils.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("%+v: want ValidationError, got %v", req, err)
		}
	}

	_, _, _, err = SelectionRequest{Item: "Badstue", Tier: "Standard"}.Resolve(cat, v)
	if !errors.Is(err, ErrUnknownItem) {
		t.Errorf("want ErrUnknownItem, got %v", err)
	}
}
