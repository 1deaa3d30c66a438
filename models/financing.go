package models

// FinancingInputs are the loan parameters and recurring monthly costs.
// Ranges are enforced by the input layer before reaching the calculator.
type FinancingInputs struct {
	EquityPercent       float64 `json:"equityPercent" validate:"gte=0,lte=100"`
	InterestRatePercent float64 `json:"interestRatePercent" validate:"gte=0,lte=15"`
	TermYears           int     `json:"termYears" validate:"gte=1,lte=30"`

	SharedCosts   float64 `json:"sharedCosts" validate:"gte=0"`
	MunicipalFees float64 `json:"municipalFees" validate:"gte=0"`
	Insurance     float64 `json:"insurance" validate:"gte=0"`
	Maintenance   float64 `json:"maintenance" validate:"gte=0"`
	Utilities     float64 `json:"utilities" validate:"gte=0"`
}

// MonthlyCost is one row of the monthly cost breakdown.
type MonthlyCost struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

// FinancingResult is the outcome of a financing calculation.
type FinancingResult struct {
	TotalInvestment float64 `json:"totalInvestment"`
	EquityPercent   float64 `json:"equityPercent"`
	Equity          float64 `json:"equity"`
	LoanAmount      float64 `json:"loanAmount"`

	InterestRatePercent float64 `json:"interestRatePercent"`
	TermYears           int     `json:"termYears"`

	MonthlyRate    float64 `json:"monthlyRate"`
	Payments       int     `json:"payments"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalInterest  float64 `json:"totalInterest"`

	MonthlyCosts  []MonthlyCost `json:"monthlyCosts"`
	TotalMonthly  float64       `json:"totalMonthly"`
	AnnualCost    float64       `json:"annualCost"`
	TaxDeduction  float64       `json:"taxDeduction"`
	NetAnnualCost float64       `json:"netAnnualCost"`
}
