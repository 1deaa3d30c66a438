// Package commands holds the cobra command tree of the boligbudsjett CLI.
package commands

import (
	"github.com/spf13/cobra"

	"boligbudsjett/catalog"
	"boligbudsjett/config"
	"boligbudsjett/utils"
)

// App carries what every command needs.
type App struct {
	Config *config.Config
	Logger *utils.Logger
}

// catalog loads the configured catalog, or the built-in one.
func (a *App) catalog() (*catalog.Catalog, error) {
	if a.Config.CatalogPath != "" {
		a.Logger.Info("loading catalog from %s", a.Config.CatalogPath)
	}
	return catalog.Load(a.Config.CatalogPath)
}

func NewRootCmd(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "boligbudsjett",
		Short:         "Renovation budget and financing calculator for Norwegian home listings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		FetchCmd(app),
		CatalogCmd(app),
		PlanCmd(app),
		ServeCmd(app),
	)
	return rootCmd
}
