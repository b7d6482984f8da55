package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-tabulator/internal/areacode"
	"github.com/jonathan/resume-tabulator/internal/batch"
	"github.com/jonathan/resume-tabulator/internal/config"
	"github.com/jonathan/resume-tabulator/internal/export"
	"github.com/jonathan/resume-tabulator/internal/logger"
	"github.com/jonathan/resume-tabulator/internal/normalize"
	"github.com/jonathan/resume-tabulator/internal/observability"
	"github.com/jonathan/resume-tabulator/internal/textkernel"
)

// commonFlags are the flags shared by every command
type commonFlags struct {
	configPath   string
	dir          string
	patterns     []string
	out          string
	responsesDir string
	areaCodes    string
	flagSpec     string
	resume       bool
	preflight    bool
	verbose      bool
	logLevel     string
	logFormat    string
}

func (f *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	cmd.Flags().StringVarP(&f.dir, "dir", "d", "", "Directory holding the input files (defaults to TARGET_DIRECTORY env var)")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Output CSV path or s3://bucket/key (default resume_data.csv)")
	cmd.Flags().StringVar(&f.areaCodes, "area-codes", "", "CSV table of area codes (area_code,city,state) replacing the built-in one")
	cmd.Flags().StringVar(&f.flagSpec, "flags", "", "YAML skill taxonomy replacing the built-in one")
	cmd.Flags().BoolVar(&f.resume, "resume", false, "Skip documents already in the output file and append new rows")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print a summary after the run")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: trace, debug, info, warn, error (defaults to LOG_LEVEL env var)")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: pretty or json")
}

// overrides returns the configuration set explicitly on the command line.
func (f *commonFlags) overrides(cmd *cobra.Command) config.Config {
	var cfg config.Config
	changed := cmd.Flags().Changed

	if changed("dir") {
		cfg.InputDir = f.dir
	}
	if changed("pattern") {
		cfg.Patterns = f.patterns
	}
	if changed("out") {
		cfg.Output = f.out
	}
	if changed("responses-dir") {
		cfg.ResponsesDir = f.responsesDir
	}
	if changed("area-codes") {
		cfg.AreaCodes = f.areaCodes
	}
	if changed("flags") {
		cfg.FlagSpec = f.flagSpec
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("log-format") {
		cfg.LogFormat = f.logFormat
	}
	return cfg
}

// pinned returns setters for the boolean flags set on the command line. They
// are applied after layering so that --resume=false beats a config file's true.
func (f *commonFlags) pinned(cmd *cobra.Command) []func(*config.Config) {
	var pins []func(*config.Config)
	changed := cmd.Flags().Changed

	if changed("resume") {
		resume := f.resume
		pins = append(pins, func(c *config.Config) { c.Resume = resume })
	}
	if changed("preflight") {
		preflight := f.preflight
		pins = append(pins, func(c *config.Config) { c.Preflight = preflight })
	}
	if changed("verbose") {
		verbose := f.verbose
		pins = append(pins, func(c *config.Config) { c.Verbose = verbose })
	}
	return pins
}

// resolveConfig layers command-line values over the config file, the
// environment and the built-in defaults, applies the pinned flags, then
// validates the result.
func resolveConfig(flags config.Config, configPath string, pins ...func(*config.Config)) (config.Config, error) {
	var file config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		file = *loaded
	}

	cfg := flags.MergeWithDefaults(file)
	cfg = cfg.MergeWithDefaults(config.FromEnv())
	cfg = cfg.MergeWithDefaults(config.Defaults())
	for _, pin := range pins {
		pin(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger installs the process logger described by cfg.
func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	return logger.Init(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}, w)
}

// loadNormalizer builds the normalizer from the configured lookup tables,
// falling back to the built-in ones.
func loadNormalizer(cfg config.Config) (*normalize.Normalizer, error) {
	var (
		codes *areacode.Table
		err   error
	)
	if cfg.AreaCodes != "" {
		codes, err = areacode.LoadCSV(cfg.AreaCodes)
	} else {
		codes, err = areacode.Default()
	}
	if err != nil {
		return nil, err
	}

	spec := normalize.DefaultFlagSpec()
	if cfg.FlagSpec != "" {
		spec, err = normalize.LoadFlagSpec(cfg.FlagSpec)
		if err != nil {
			return nil, err
		}
	}

	return normalize.New(codes, spec), nil
}

// tabulation is one configured pass over a set of documents
type tabulation struct {
	cfg    config.Config
	parser textkernel.Parser
	id     func(path string) string
	log    zerolog.Logger
	stdout io.Writer
}

// run processes paths and writes the rows. A cancelled context still
// exports the rows gathered so far before its error is returned.
func (t *tabulation) run(ctx context.Context, paths []string) (*batch.Result, error) {
	normalizer, err := loadNormalizer(t.cfg)
	if err != nil {
		return nil, err
	}

	var skip map[string]struct{}
	if t.cfg.Resume {
		var existing []string
		skip, existing, err = export.ReadDocumentIDs(t.cfg.Output)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			want, err := columnHeader(t.cfg)
			if err != nil {
				return nil, err
			}
			if !slices.Equal(existing, want) {
				return nil, fmt.Errorf("cannot resume: %s has %d columns that differ from the %d columns of the current skill taxonomy; write to a new output instead",
					t.cfg.Output, len(existing), len(want))
			}
		}
		t.log.Info().Int("known", len(skip)).Str("output", t.cfg.Output).Msg("resuming from existing output")
	}

	driver := &batch.Driver{
		Parser:       t.parser,
		Normalizer:   normalizer,
		Skip:         skip,
		ResponsesDir: t.cfg.ResponsesDir,
		Preflight:    t.cfg.Preflight,
		ID:           t.id,
		Logger:       t.log,
	}

	result, runErr := driver.Run(ctx, paths)
	if result == nil {
		return nil, runErr
	}

	opts := export.Options{
		Append: t.cfg.Resume,
		S3: export.S3Options{
			Region:    t.cfg.S3Region,
			Endpoint:  t.cfg.S3Endpoint,
			AccessKey: t.cfg.S3AccessKey,
			SecretKey: t.cfg.S3SecretKey,
		},
	}
	if err := export.Write(context.WithoutCancel(ctx), t.cfg.Output, result.Rows, opts); err != nil {
		return result, err
	}
	if len(result.Rows) == 0 {
		t.log.Warn().Msg("no rows produced, output not written")
	} else {
		t.log.Info().Int("rows", len(result.Rows)).Str("output", t.cfg.Output).Msg("output written")
	}

	if t.cfg.Verbose {
		printer := observability.NewPrinter(t.stdout)
		if len(result.Rows) > 0 {
			printer.PrintRecord(result.Rows[0])
		}
		printer.PrintFailures(result.Failures)
		printer.PrintBatchSummary(result, t.cfg.Output)
	}

	return result, runErr
}
