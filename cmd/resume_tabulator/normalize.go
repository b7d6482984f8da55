package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tabulator/internal/batch"
	"github.com/jonathan/resume-tabulator/internal/textkernel"
)

// archivePattern selects the responses written by run --responses-dir
const archivePattern = "*.json"

var normalizeCommand = &cobra.Command{
	Use:   "normalize",
	Short: "Rebuild the CSV table from archived parser responses",
	Long: `Reads the raw responses archived by 'run --responses-dir' (<document>.json) and runs them
through the same normalization as 'run'. No request is sent to the parsing service.`,
	RunE: runNormalizeCmd,
}

var normalizeFlags commonFlags

func init() {
	normalizeFlags.register(normalizeCommand)
	rootCmd.AddCommand(normalizeCommand)
}

func runNormalizeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(normalizeFlags.overrides(cmd), normalizeFlags.configPath, normalizeFlags.pinned(cmd)...)
	if err != nil {
		return err
	}
	log := newLogger(cfg, nil)

	if cfg.InputDir == "" {
		return fmt.Errorf("--dir must be provided (the directory of archived responses)")
	}
	// Replayed responses are already archived.
	cfg.ResponsesDir = ""
	cfg.Preflight = false

	paths, err := batch.Discover(cfg.InputDir, []string{archivePattern})
	if err != nil {
		return err
	}
	log.Info().Str("dir", cfg.InputDir).Int("responses", len(paths)).Msg("archived responses discovered")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	t := &tabulation{
		cfg:    cfg,
		parser: textkernel.ReplayParser{},
		id:     batch.ArchivedDocumentID,
		log:    log,
		stdout: cmd.OutOrStdout(),
	}
	_, err = t.run(ctx, paths)
	return err
}
