package models

// PropertyRecord holds the attributes extracted from a listing page.
// Every field is optional: nil means the label was not present in the page
// or its value could not be coerced cleanly.
type PropertyRecord struct {
	Price      *int64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	TotalPrice *int64 `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	SharedDebt *int64 `json:"sharedDebt,omitempty" validate:"omitempty,gte=0"`

	Size        *float64 `json:"size,omitempty" validate:"omitempty,gte=0"` // P-ROM
	BRATotal    *float64 `json:"braTotal,omitempty" validate:"omitempty,gte=0"`
	BRAInternal *float64 `json:"braInternal,omitempty" validate:"omitempty,gte=0"`
	BRAExternal *float64 `json:"braExternal,omitempty" validate:"omitempty,gte=0"`
	BalconySize *float64 `json:"balconySize,omitempty" validate:"omitempty,gte=0"`
	PlotSize    *float64 `json:"plotSize,omitempty" validate:"omitempty,gte=0"`

	Rooms     *int `json:"rooms,omitempty" validate:"omitempty,gte=0"`
	Bedrooms  *int `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	YearBuilt *int `json:"yearBuilt,omitempty" validate:"omitempty,gte=0"`
	Floor     *int `json:"floor,omitempty" validate:"omitempty,gte=0"`

	Address       *string `json:"address,omitempty"`
	PropertyType  *string `json:"propertyType,omitempty"`
	OwnershipType *string `json:"ownershipType,omitempty"`
	EnergyRating  *string `json:"energyRating,omitempty"`
}

// PurchasePrice prefers the total price (asking price plus shared debt and
// fees) and falls back to the asking price.
func (p PropertyRecord) PurchasePrice() float64 {
	if p.TotalPrice != nil && *p.TotalPrice > 0 {
		return float64(*p.TotalPrice)
	}
	if p.Price != nil && *p.Price > 0 {
		return float64(*p.Price)
	}
	return 0
}

// LivableArea picks the area renovation quantities are based on:
// BRA-i, then P-ROM, then total BRA.
func (p PropertyRecord) LivableArea() float64 {
	for _, a := range []*float64{p.BRAInternal, p.Size, p.BRATotal} {
		if a != nil && *a > 0 {
			return *a
		}
	}
	return 0
}

// PricePerArea is purchase price per m² of livable area. ok is false when
// either side is unknown.
func (p PropertyRecord) PricePerArea() (value float64, ok bool) {
	price, area := p.PurchasePrice(), p.LivableArea()
	if price <= 0 || area <= 0 {
		return 0, false
	}
	return price / area, true
}

// AddressOr returns the address or fallback when unknown.
func (p PropertyRecord) AddressOr(fallback string) string {
	if p.Address == nil || *p.Address == "" {
		return fallback
	}
	return *p.Address
}
