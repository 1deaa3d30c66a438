package commands

import (
	"fmt"
	"strconv"
	"strings"

	"boligbudsjett/catalog"
	"boligbudsjett/models"
	"boligbudsjett/services"
)

// parseSelection reads "Item=Tier" or "Item=Tier:N". N is a percentage of
// the livable area for m² items and a count for piece items.
func parseSelection(cat *catalog.Catalog, arg string) (services.SelectionRequest, error) {
	i := strings.LastIndex(arg, "=")
	if i <= 0 {
		return services.SelectionRequest{}, fmt.Errorf("invalid selection %q: want \"Item=Tier[:N]\"", arg)
	}
	req := services.SelectionRequest{Item: strings.TrimSpace(arg[:i])}

	tier, amount, hasAmount := strings.Cut(arg[i+1:], ":")
	req.Tier = strings.TrimSpace(tier)
	if !hasAmount {
		return req, nil
	}

	amount = strings.Replace(strings.TrimSpace(amount), ",", ".", 1)
	item, ok := cat.Lookup(req.Item)
	if ok && item.Unit == models.UnitPiece {
		n, err := strconv.Atoi(amount)
		if err != nil {
			return services.SelectionRequest{}, fmt.Errorf("invalid count in %q: %w", arg, err)
		}
		req.Count = &n
		return req, nil
	}

	pct, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return services.SelectionRequest{}, fmt.Errorf("invalid percentage in %q: %w", arg, err)
	}
	req.Percent = &pct
	return req, nil
}

// parseRates reads a comma separated list such as "3.5,4.5,5.5".
func parseRates(list []string) ([]float64, error) {
	rates := make([]float64, 0, len(list))
	for _, s := range list {
		r, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid interest rate %q: %w", s, err)
		}
		rates = append(rates, r)
	}
	return rates, nil
}
