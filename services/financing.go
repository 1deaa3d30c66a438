package services

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"boligbudsjett/models"
)

// TaxDeductionRate is the flat share of annual interest assumed deductible.
const TaxDeductionRate = 0.22

// Labels of the monthly cost breakdown.
const (
	LabelLoan          = "Lån (renter + avdrag)"
	LabelSharedCosts   = "Felleskostnader"
	LabelMunicipalFees = "Kommunale avgifter"
	LabelInsurance     = "Forsikring"
	LabelMaintenance   = "Vedlikeholdsavsetning"
	LabelUtilities     = "Strøm/oppvarming"
)

// DefaultFinancingInputs returns the starting values offered to a user for
// a given total investment.
func DefaultFinancingInputs(totalInvestment float64) models.FinancingInputs {
	return models.FinancingInputs{
		EquityPercent:       15,
		InterestRatePercent: 4.5,
		TermYears:           25,
		SharedCosts:         2500,
		MunicipalFees:       500,
		Insurance:           300,
		Maintenance:         math.Floor(math.Max(totalInvestment, 0) * 0.001),
		Utilities:           1500,
	}
}

// ComputeFinancing derives the loan, the monthly and annual costs and the
// estimated interest tax deduction. Inputs are assumed to be validated.
func ComputeFinancing(totalInvestment float64, in models.FinancingInputs) models.FinancingResult {
	equity := totalInvestment * in.EquityPercent / 100
	loan := totalInvestment - equity
	rate := in.InterestRatePercent / 1200
	n := in.TermYears * 12
	payment := MonthlyPayment(loan, rate, n)

	costs := []models.MonthlyCost{
		{Label: LabelLoan, Amount: payment},
		{Label: LabelSharedCosts, Amount: in.SharedCosts},
		{Label: LabelMunicipalFees, Amount: in.MunicipalFees},
		{Label: LabelInsurance, Amount: in.Insurance},
		{Label: LabelMaintenance, Amount: in.Maintenance},
		{Label: LabelUtilities, Amount: in.Utilities},
	}
	amounts := make([]float64, len(costs))
	for i, c := range costs {
		amounts[i] = c.Amount
	}
	totalMonthly := floats.Sum(amounts)
	annual := totalMonthly * 12
	tax := loan * in.InterestRatePercent / 100 * TaxDeductionRate

	totalPaid := payment * float64(n)
	return models.FinancingResult{
		TotalInvestment: totalInvestment,
		EquityPercent:   in.EquityPercent,
		Equity:          equity,
		LoanAmount:      loan,

		InterestRatePercent: in.InterestRatePercent,
		TermYears:           in.TermYears,

		MonthlyRate:    rate,
		Payments:       n,
		MonthlyPayment: payment,
		TotalPaid:      totalPaid,
		TotalInterest:  totalPaid - loan,
		MonthlyCosts:   costs,
		TotalMonthly:   totalMonthly,
		AnnualCost:     annual,
		TaxDeduction:   tax,
		NetAnnualCost:  annual - tax,
	}
}

// MonthlyPayment is the annuity payment for loan over n months at the
// given monthly rate. At a zero rate the loan is simply split evenly.
func MonthlyPayment(loan, monthlyRate float64, n int) float64 {
	if n <= 0 || loan <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return loan / float64(n)
	}
	growth := math.Pow(1+monthlyRate, float64(n))
	return loan * monthlyRate * growth / (growth - 1)
}

// RateScenarios copies base once per interest rate.
func RateScenarios(base models.FinancingInputs, rates []float64) []models.FinancingInputs {
	out := make([]models.FinancingInputs, len(rates))
	for i, r := range rates {
		out[i] = base
		out[i].InterestRatePercent = r
	}
	return out
}

// CompareScenarios evaluates several what-if inputs against the same total
// investment, at most limit at a time. Results are in input order.
func CompareScenarios(ctx context.Context, totalInvestment float64, scenarios []models.FinancingInputs, limit int) ([]models.FinancingResult, error) {
	results := make([]models.FinancingResult, len(scenarios))
	if limit <= 0 {
		limit = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range scenarios {
		i, in := i, in
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ComputeFinancing(totalInvestment, in)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
