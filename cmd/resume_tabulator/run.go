package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tabulator/internal/batch"
	"github.com/jonathan/resume-tabulator/internal/config"
	"github.com/jonathan/resume-tabulator/internal/textkernel"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Parse every resume in a directory and write the CSV table",
	Long: `Sends each matching document to the resume parsing service, normalizes the result and
writes one row per successfully parsed document.

Credentials are read from ACCOUNT_ID and SERVICE_KEY (a .env file is loaded if present).
Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runTabulateCmd,
}

var runFlags commonFlags

func init() {
	runFlags.register(runCommand)
	runCommand.Flags().StringArrayVarP(&runFlags.patterns, "pattern", "p", nil, "Glob pattern selecting input files (repeatable, default *.pdf)")
	runCommand.Flags().StringVar(&runFlags.responsesDir, "responses-dir", "", "Archive every raw parser response in this directory")
	runCommand.Flags().BoolVar(&runFlags.preflight, "preflight", false, "Check that PDF and DOCX files open before sending them")

	rootCmd.AddCommand(runCommand)
}

func runTabulateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(runFlags.overrides(cmd), runFlags.configPath, runFlags.pinned(cmd)...)
	if err != nil {
		return err
	}
	log := newLogger(cfg, nil)

	if err := cfg.RequireCredentials(); err != nil {
		return err
	}
	if cfg.InputDir == "" {
		return fmt.Errorf("--dir must be provided (via flag, config or %s)", config.EnvTargetDirectory)
	}

	client, err := textkernel.NewClient(textkernel.Options{
		URL:        cfg.APIURL,
		AccountID:  cfg.AccountID,
		ServiceKey: cfg.ServiceKey,
		Timeout:    cfg.Timeout(),
	})
	if err != nil {
		return err
	}

	paths, err := batch.Discover(cfg.InputDir, cfg.Patterns)
	if err != nil {
		return err
	}
	log.Info().Str("dir", cfg.InputDir).Strs("patterns", cfg.Patterns).Int("documents", len(paths)).Msg("documents discovered")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	t := &tabulation{cfg: cfg, parser: client, id: batch.DocumentID, log: log, stdout: cmd.OutOrStdout()}
	_, err = t.run(ctx, paths)
	return err
}
