package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tabulator/internal/config"
	"github.com/jonathan/resume-tabulator/internal/normalize"
	"github.com/jonathan/resume-tabulator/internal/types"
)

var columnsCommand = &cobra.Command{
	Use:   "columns",
	Short: "Print the output columns for the configured skill taxonomy",
	RunE:  runColumnsCmd,
}

var columnsFlagSpec string

func init() {
	columnsCommand.Flags().StringVar(&columnsFlagSpec, "flags", "", "YAML skill taxonomy replacing the built-in one")
	rootCmd.AddCommand(columnsCommand)
}

func runColumnsCmd(cmd *cobra.Command, _ []string) error {
	header, err := columnHeader(config.Config{FlagSpec: columnsFlagSpec})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(header, "\n"))
	return err
}

// columnHeader returns the export header for the taxonomy configured in cfg.
func columnHeader(cfg config.Config) ([]string, error) {
	spec := normalize.DefaultFlagSpec()
	if cfg.FlagSpec != "" {
		var err error
		spec, err = normalize.LoadFlagSpec(cfg.FlagSpec)
		if err != nil {
			return nil, err
		}
	}

	rec := &types.NormalizedRecord{}
	for _, column := range spec.Columns() {
		rec.Flags = append(rec.Flags, types.Flag{Column: column})
	}
	return rec.Header(), nil
}
