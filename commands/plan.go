package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"boligbudsjett/models"
	"boligbudsjett/services"
	"boligbudsjett/storage"
	"boligbudsjett/utils"
)

type planOptions struct {
	url      string
	htmlPath string
	price    int64
	area     float64
	selects  []string

	financing    models.FinancingInputs
	compareRates []string

	reportPath string
	csvPath    string
}

func PlanCmd(app *App) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a renovation budget and financing plan for a listing",
		Example: `  boligbudsjett plan --url https://www.finn.no/realestate/homes/ad.html?finnkode=123 \
    --select "Nytt bad=Standard:100" --select "Nye vinduer=Budget:4" --rate 5.1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "", "listing URL to fetch")
	f.StringVar(&opts.htmlPath, "html", "", "saved listing page to parse")
	f.Int64Var(&opts.price, "price", 0, "purchase price, overrides the listing")
	f.Float64Var(&opts.area, "area", 0, "livable area in m², overrides the listing")
	f.StringArrayVar(&opts.selects, "select", nil, `renovation item as "Item=Tier[:N]" (repeatable)`)

	f.Float64Var(&opts.financing.EquityPercent, "equity", 0, "equity in percent of total investment (default 15)")
	f.Float64Var(&opts.financing.InterestRatePercent, "rate", 0, "annual interest rate in percent (default 4.5)")
	f.IntVar(&opts.financing.TermYears, "years", 0, "loan term in years (default 25)")
	f.Float64Var(&opts.financing.SharedCosts, "shared", 0, "monthly shared costs (default 2500)")
	f.Float64Var(&opts.financing.MunicipalFees, "municipal", 0, "monthly municipal fees (default 500)")
	f.Float64Var(&opts.financing.Insurance, "insurance", 0, "monthly insurance (default 300)")
	f.Float64Var(&opts.financing.Maintenance, "maintenance", 0, "monthly maintenance reserve (default 0.1 % of total)")
	f.Float64Var(&opts.financing.Utilities, "utilities", 0, "monthly power and heating (default 1500)")
	f.StringSliceVar(&opts.compareRates, "compare-rates", nil, "compare interest rates, e.g. 3.5,4.5,5.5")

	f.StringVar(&opts.reportPath, "report", "", "write the text report to this file")
	f.StringVar(&opts.csvPath, "csv", "", "write the item breakdown as CSV to this file")
	return cmd
}

func runPlan(cmd *cobra.Command, app *App, opts *planOptions) error {
	cat, err := app.catalog()
	if err != nil {
		return err
	}
	validate := utils.NewValidator()

	record, err := planRecord(cmd, app, opts)
	if err != nil {
		return err
	}
	area := record.LivableArea()
	if area == 0 {
		app.Logger.Warn("livable area unknown; area based items get quantity 0")
	}

	plan := services.NewPlan()
	for _, arg := range opts.selects {
		req, err := parseSelection(cat, arg)
		if err != nil {
			return err
		}
		item, tier, input, err := req.Resolve(cat, validate)
		if err != nil {
			return fmt.Errorf("--select %q: %w", arg, err)
		}
		if _, err := plan.Select(cat, item.Name, tier, input, area); err != nil {
			return err
		}
	}

	summary := services.Summarize(record, plan.Snapshot(cat))
	inputs := financingInputs(cmd.Flags(), opts.financing, summary.TotalInvestment)
	if err := validate.Struct(inputs); err != nil {
		return err
	}
	fin := services.ComputeFinancing(summary.TotalInvestment, inputs)

	address := record.AddressOr("")
	printer := services.NewReportService(app.Logger).WithOutput(cmd.OutOrStdout())
	printer.Print(summary, address, &fin)

	if len(opts.compareRates) > 0 {
		rates, err := parseRates(opts.compareRates)
		if err != nil {
			return err
		}
		scenarios := services.RateScenarios(inputs, rates)
		for _, s := range scenarios {
			if err := validate.Struct(s); err != nil {
				return err
			}
		}
		results, err := services.CompareScenarios(cmd.Context(), summary.TotalInvestment, scenarios, app.Config.CompareConcurrency)
		if err != nil {
			return err
		}
		printer.PrintComparison(results)
	}

	if opts.reportPath != "" {
		if err := writeReport(opts.reportPath, services.BuildReport(summary, address, &fin)); err != nil {
			return err
		}
		app.Logger.Info("report saved to %s", opts.reportPath)
	}
	if opts.csvPath != "" {
		if err := writeBreakdown(opts.csvPath, summary.Selections); err != nil {
			return err
		}
		app.Logger.Info("breakdown saved to %s", opts.csvPath)
	}
	return nil
}

// planRecord returns the listing to plan for: fetched, parsed from a file,
// or empty, with --price and --area applied on top.
func planRecord(cmd *cobra.Command, app *App, opts *planOptions) (models.PropertyRecord, error) {
	var record models.PropertyRecord
	if opts.url != "" || opts.htmlPath != "" {
		res, err := loadListing(cmd, app, opts.url, opts.htmlPath)
		if err != nil {
			return record, err
		}
		if !res.Success {
			return record, errors.New(res.Message)
		}
		record = res.Record
	}

	if opts.price > 0 {
		p := opts.price
		record.TotalPrice = &p
	}
	if opts.area > 0 {
		a := opts.area
		record.BRAInternal = &a
	}
	if record.PurchasePrice() == 0 {
		return record, errors.New("no purchase price: give --url, --html or --price")
	}
	return record, nil
}

// financingInputs starts from the defaults and applies only the flags the
// user actually set.
func financingInputs(flags *pflag.FlagSet, set models.FinancingInputs, total float64) models.FinancingInputs {
	in := services.DefaultFinancingInputs(total)
	if flags.Changed("equity") {
		in.EquityPercent = set.EquityPercent
	}
	if flags.Changed("rate") {
		in.InterestRatePercent = set.InterestRatePercent
	}
	if flags.Changed("years") {
		in.TermYears = set.TermYears
	}
	if flags.Changed("shared") {
		in.SharedCosts = set.SharedCosts
	}
	if flags.Changed("municipal") {
		in.MunicipalFees = set.MunicipalFees
	}
	if flags.Changed("insurance") {
		in.Insurance = set.Insurance
	}
	if flags.Changed("maintenance") {
		in.Maintenance = set.Maintenance
	}
	if flags.Changed("utilities") {
		in.Utilities = set.Utilities
	}
	return in
}

func writeReport(path, report string) error {
	w, err := storage.NewTextReportWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteReport(report); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

func writeBreakdown(path string, selections []models.RenovationSelection) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteBreakdown(selections); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
