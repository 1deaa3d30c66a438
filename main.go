package main

import (
	"fmt"
	"os"

	"boligbudsjett/commands"
	"boligbudsjett/config"
	"boligbudsjett/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(utils.LogConfig{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
		Out:    os.Stderr,
	})

	logger.Debug("config: fetch=%s timeout=%s catalog=%q addr=%s",
		cfg.FetchMode, cfg.FetchTimeout, cfg.CatalogPath, cfg.HTTPAddr)

	root := commands.NewRootCmd(&commands.App{Config: cfg, Logger: logger})
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
