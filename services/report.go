package services

import (
	"fmt"
	"io"
	"os"
	"strings"

	"boligbudsjett/models"
	"boligbudsjett/utils"
)

// BuildReport renders the plain-text cost report offered for download.
// The financing block is included only when fin is non-nil.
func BuildReport(summary models.BudgetSummary, address string, fin *models.FinancingResult) string {
	if address == "" {
		address = "ukjent adresse"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Kostnadsrapport for %s\n\n", address)
	fmt.Fprintf(&b, "Opprinnelig kjøpspris: %s\n", utils.FormatNOK(summary.PurchasePrice))
	fmt.Fprintf(&b, "Oppussingskostnad: %s\n", utils.FormatNOK(summary.RenovationCost))
	fmt.Fprintf(&b, "Total investering: %s\n", utils.FormatNOK(summary.TotalInvestment))
	fmt.Fprintf(&b, "Pris per m² før: %s\n", utils.FormatNOKPtr(summary.PricePerAreaBefore))
	fmt.Fprintf(&b, "Pris per m² etter: %s\n", utils.FormatNOKPtr(summary.PricePerAreaAfter))

	b.WriteString("\nSpesifisert oppussing:\n")
	if len(summary.Selections) == 0 {
		b.WriteString("Ingen tiltak valgt\n")
	}
	for _, s := range summary.Selections {
		fmt.Fprintf(&b, "\n%s:\n", s.Item)
		fmt.Fprintf(&b, "- Kvalitet: %s\n", s.Tier)
		fmt.Fprintf(&b, "- Omfang: %s %s\n", utils.FormatDecimal(s.Quantity), s.Unit.Label())
		fmt.Fprintf(&b, "- Enhetspris: %s/%s\n", utils.FormatNOK(s.UnitCost), s.Unit.Label())
		fmt.Fprintf(&b, "- Kostnad: %s\n", utils.FormatNOK(s.TotalCost))
	}

	if fin != nil {
		b.WriteString("\nFinansiering:\n")
		fmt.Fprintf(&b, "- Egenkapital (%s): %s\n", utils.FormatPercent(fin.EquityPercent/100), utils.FormatNOK(fin.Equity))
		fmt.Fprintf(&b, "- Lånebeløp: %s\n", utils.FormatNOK(fin.LoanAmount))
		fmt.Fprintf(&b, "- Rente: %s over %d år\n", utils.FormatPercent(fin.InterestRatePercent/100), fin.TermYears)
		for _, c := range fin.MonthlyCosts {
			fmt.Fprintf(&b, "- %s: %s/mnd\n", c.Label, utils.FormatNOK(c.Amount))
		}
		fmt.Fprintf(&b, "- Totalt per måned: %s\n", utils.FormatNOK(fin.TotalMonthly))
		fmt.Fprintf(&b, "- Årlige kostnader: %s\n", utils.FormatNOK(fin.AnnualCost))
		fmt.Fprintf(&b, "- Skattefradrag (estimat): %s\n", utils.FormatNOK(fin.TaxDeduction))
		fmt.Fprintf(&b, "- Netto årlige kostnader: %s\n", utils.FormatNOK(fin.NetAnnualCost))
	}
	return b.String()
}

// ReportService prints budget and financing overviews to a terminal.
type ReportService struct {
	logger *utils.Logger
	out    io.Writer
}

func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger, out: os.Stdout}
}

// WithOutput redirects the printout, mainly for tests.
func (s *ReportService) WithOutput(w io.Writer) *ReportService {
	s.out = w
	return s
}

func (s *ReportService) Print(summary models.BudgetSummary, address string, fin *models.FinancingResult) {
	s.logger.Debug("printing budget for %q (%d items)", address, len(summary.Selections))

	w := s.out
	sep := strings.Repeat("═", 58)
	thin := strings.Repeat("─", 58)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  🏠 BOLIGBUDSJETT  %s\033[0m\n", truncate(address, 38))
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Fprintf(w, "\033[1;33m  Kostnadssammendrag\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Kjøpspris          : \033[1m%s\033[0m\n", utils.FormatNOK(summary.PurchasePrice))
	fmt.Fprintf(w, "  Boligareal         : %s\n", areaOrNA(summary.LivableArea))
	share := utils.NotAvailable
	if summary.RenovationShare != nil {
		share = utils.FormatPercent(*summary.RenovationShare) + " av kjøpspris"
	}
	fmt.Fprintf(w, "  Oppussingskostnad  : \033[1m%s\033[0m (%s)\n", utils.FormatNOK(summary.RenovationCost), share)
	fmt.Fprintf(w, "  Total investering  : \033[1;32m%s\033[0m\n", utils.FormatNOK(summary.TotalInvestment))
	fmt.Fprintf(w, "  Pris per m² før    : %s\n", utils.FormatNOKPtr(summary.PricePerAreaBefore))
	fmt.Fprintf(w, "  Pris per m² etter  : %s\n", utils.FormatNOKPtr(summary.PricePerAreaAfter))
	fmt.Fprintln(w)

	// Selected items
	fmt.Fprintf(w, "\033[1;33m  Spesifisert oversikt\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(summary.Selections) == 0 {
		fmt.Fprintf(w, "  Ingen tiltak valgt\n")
	} else {
		for i, sel := range summary.Selections {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-22s %-8s %10s %-3s %18s\n",
				i+1, truncate(sel.Item, 22), sel.Tier,
				utils.FormatDecimal(sel.Quantity), sel.Unit.Label(),
				utils.FormatNOK(sel.TotalCost))
		}
	}
	fmt.Fprintln(w)

	if fin != nil {
		fmt.Fprintf(w, "\033[1;33m  Finansieringsplan\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  Egenkapital        : %s (%s)\n", utils.FormatNOK(fin.Equity), utils.FormatPercent(fin.EquityPercent/100))
		fmt.Fprintf(w, "  Lånebeløp          : %s\n", utils.FormatNOK(fin.LoanAmount))
		for _, c := range fin.MonthlyCosts {
			fmt.Fprintf(w, "  %-24s %16s\n", truncate(c.Label, 24), utils.FormatNOK(c.Amount))
		}
		fmt.Fprintf(w, "  %-24s \033[1m%16s\033[0m\n", "Totalt per måned", utils.FormatNOK(fin.TotalMonthly))
		fmt.Fprintf(w, "  Årlige kostnader   : %s\n", utils.FormatNOK(fin.AnnualCost))
		fmt.Fprintf(w, "  Skattefradrag      : \033[1;32m%s\033[0m\n", utils.FormatNOK(fin.TaxDeduction))
		fmt.Fprintf(w, "  Netto per år       : \033[1;31m%s\033[0m\n", utils.FormatNOK(fin.NetAnnualCost))
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// PrintComparison lists what-if financing results side by side.
func (s *ReportService) PrintComparison(results []models.FinancingResult) {
	w := s.out
	thin := strings.Repeat("─", 58)

	fmt.Fprintf(w, "\033[1;33m  Rentescenarier\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  %-8s %18s %18s\n", "Rente", "Per måned", "Netto per år")
	for _, r := range results {
		fmt.Fprintf(w, "  %-8s %18s %18s\n",
			utils.FormatPercent(r.InterestRatePercent/100),
			utils.FormatNOK(r.TotalMonthly),
			utils.FormatNOK(r.NetAnnualCost))
	}
	fmt.Fprintln(w)
}

func areaOrNA(v float64) string {
	if v <= 0 {
		return utils.NotAvailable
	}
	return utils.FormatArea(v)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
