package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"boligbudsjett/scraper/finn"
)

func FetchCmd(app *App) *cobra.Command {
	var htmlPath string

	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Fetch a listing and print the extracted property record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var url string
			if len(args) == 1 {
				url = args[0]
			}
			res, err := loadListing(cmd, app, url, htmlPath)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("failed to encode record: %w", err)
			}
			if !res.Success {
				return errors.New(res.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "parse a saved listing page instead of fetching")
	return cmd
}

// loadListing fetches url or parses the file at htmlPath; exactly one must be set.
func loadListing(cmd *cobra.Command, app *App, url, htmlPath string) (finn.Result, error) {
	switch {
	case url != "" && htmlPath != "":
		return finn.Result{}, errors.New("give either a URL or --html, not both")
	case htmlPath != "":
		data, err := os.ReadFile(htmlPath)
		if err != nil {
			return finn.Result{}, fmt.Errorf("failed to read %s: %w", htmlPath, err)
		}
		s := finn.NewWithFetcher(nil, app.Logger.Named("finn"))
		return s.Parse(string(data)), nil
	case url != "":
		return finn.New(app.Config, app.Logger).Scrape(cmd.Context(), url), nil
	default:
		return finn.Result{}, errors.New("a listing URL or --html file is required")
	}
}
