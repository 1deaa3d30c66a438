package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"boligbudsjett/models"
	"boligbudsjett/utils"
)

func CatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List renovation items and unit prices per quality tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := app.catalog()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, category := range cat.Categories() {
				fmt.Fprintf(w, "\n%s\n", category)
				for _, item := range cat.Items(category) {
					fmt.Fprintf(w, "  %-18s %-4s", item.Name, item.Unit.Label())
					for _, tier := range models.Tiers {
						cost, _ := item.UnitCost(tier)
						fmt.Fprintf(w, "  %s %10s", tier, utils.FormatAmount(cost))
					}
					fmt.Fprintf(w, "\n  %18s %s\n", "", item.Description)
				}
			}
			fmt.Fprintln(w)
			return nil
		},
	}
}
