// HelixPack predicts the packing of transmembrane helices from predicted
// residue contacts.
//
// Build:
//
//	go build -o helixpack ./cmd/helixpack
//
// Usage:
//
//	helixpack contacts.txt
//	helixpack --profile Thorough --pdf out.pdf --dxf out.dxf contacts.xlsx
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/HelixPack/internal/contactgraph"
	"github.com/piwi3910/HelixPack/internal/engine"
	"github.com/piwi3910/HelixPack/internal/export"
	"github.com/piwi3910/HelixPack/internal/importer"
	"github.com/piwi3910/HelixPack/internal/layout"
	"github.com/piwi3910/HelixPack/internal/model"
	"github.com/piwi3910/HelixPack/internal/project"
)

// options holds the command line flags of one invocation.
type options struct {
	configPath   string
	profilesPath string
	profile      string
	verbose      bool
	seed         int64
	workers      int
	timeout      time.Duration
	pdfPath      string
	dxfPath      string
	jsonPath     string

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "helixpack [flags] <contacts-file>",
		Short: "Predict transmembrane helix packing from residue contacts",
		Long: `HelixPack places the helices of each connected contact component in the
membrane plane, searches for topologically equivalent helix swaps, optimises
every helix rotation with a genetic algorithm and prints the arrangements
ranked by mean contact distance.

The input is a text file of contact lines ("12-45 1-3 0.87") with a
"# Topology: start,stop,..." line, or an .xlsx workbook with a Topology sheet.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			config.Level = zap.NewAtomicLevelAt(logLevel(opts))
			var err error
			opts.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", project.DefaultConfigPath(), "Configuration file")
	flags.StringVar(&opts.profilesPath, "profiles", project.DefaultProfilesPath(), "Custom search profiles file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	local := root.Flags()
	local.StringVarP(&opts.profile, "profile", "p", "", "Search profile (see 'helixpack profiles')")
	local.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = from config, else derived from clock, host and pid)")
	local.IntVarP(&opts.workers, "workers", "j", 0, "Arrangements optimised in parallel (0 = from config)")
	local.DurationVar(&opts.timeout, "timeout", 0, "Abort the run after this long (0 = no limit)")
	local.StringVar(&opts.pdfPath, "pdf", "", "Write arrangement diagrams to this PDF")
	local.StringVar(&opts.dxfPath, "dxf", "", "Write arrangement drawings to this DXF")
	local.StringVar(&opts.jsonPath, "json", "", "Write the result archive to this JSON file")

	root.AddCommand(newProfilesCmd(opts))
	root.AddCommand(newCompareCmd(opts))
	return root
}

// newCompareCmd ranks the input under what-if variations of the resolved
// settings and prints one summary row per scenario.
func newCompareCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [flags] <contacts-file>",
		Short: "Compare rankings under variations of the search settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := project.LoadAppConfig(opts.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			settings, seed, err := resolveSettings(cmd, opts, cfg)
			if err != nil {
				return err
			}

			result, err := importer.Import(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			comps := contactgraph.Components(result.Input, settings.EdgeWeight)

			layoutFor := func(s model.Settings) engine.LayoutProvider {
				return layout.NewProvider(s, opts.logger)
			}
			results, err := engine.CompareScenarios(cmd.Context(), engine.BuildDefaultScenarios(settings), comps, layoutFor, seed, opts.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-26s %12s %12s %12s\n", "Scenario", "Arrangements", "Mean best", "Evaluations")
			for _, r := range results {
				fmt.Fprintf(out, "%-26s %12d %12.4f %12d\n", r.Scenario.Name, r.Arrangements, r.MeanBest, r.Evaluations)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.profile, "profile", "p", "", "Search profile used as the baseline")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed shared by all scenarios")
	cmd.Flags().IntVarP(&opts.workers, "workers", "j", 0, "Arrangements optimised in parallel (0 = from config)")
	return cmd
}

// newProfilesCmd lists built-in and custom search profiles.
func newProfilesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List search profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			custom, err := project.LoadCustomProfiles(opts.profilesPath)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range model.AllSearchProfiles(custom) {
				kind := "custom"
				if p.IsBuiltIn {
					kind = "built-in"
				}
				fmt.Fprintf(out, "%-12s %-9s %s\n", p.Name, kind, p.Description)
			}
			return nil
		},
	}
}

// logLevel enables debug logging when --verbose is set or the config file
// asks for it. An unreadable config is reported later by the command itself.
func logLevel(opts *options) zapcore.Level {
	if opts.verbose {
		return zapcore.DebugLevel
	}
	if cfg, err := project.LoadAppConfig(opts.configPath); err == nil && cfg.Verbose {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// resolveSettings layers defaults, config file, profile and flags.
func resolveSettings(cmd *cobra.Command, opts *options, cfg model.AppConfig) (model.Settings, int64, error) {
	settings := model.DefaultSettings()
	cfg.ApplyToSettings(&settings)

	if opts.profile != "" {
		custom, err := project.LoadCustomProfiles(opts.profilesPath)
		if err != nil {
			return settings, 0, err
		}
		p, ok := model.FindSearchProfile(opts.profile, custom)
		if !ok {
			return settings, 0, fmt.Errorf("unknown profile %q (available: %v)", opts.profile, model.SearchProfileNames(custom))
		}
		p.ApplyTo(&settings)
	}

	if opts.workers > 0 {
		settings.Workers = opts.workers
	}
	if err := settings.Validate(); err != nil {
		return settings, 0, err
	}

	seed := cfg.Seed
	if cmd.Flags().Changed("seed") {
		seed = opts.seed
	}
	if seed == 0 {
		seed = engine.NewSeed()
	}
	return settings, seed, nil
}

func run(cmd *cobra.Command, opts *options, input string) error {
	logger := opts.logger

	cfg, err := project.LoadAppConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	settings, seed, err := resolveSettings(cmd, opts, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	result, err := importer.Import(input)
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	for _, w := range result.Warnings {
		logger.Debug("Input skipped", zap.String("detail", w))
	}
	logger.Info("Input loaded",
		zap.String("source", input),
		zap.Int("helices", len(result.Input.Helices)),
		zap.Int("contacts", len(result.Input.Contacts)),
		zap.Int64("seed", seed))

	comps := contactgraph.Components(result.Input, settings.EdgeWeight)
	ranker := engine.NewRanker(settings, layout.NewProvider(settings, logger), seed, logger)

	report, err := ranker.Rank(ctx, input, comps)
	if err != nil {
		return err
	}

	if err := export.WriteReport(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if err := writeOutputs(opts, cfg, report, settings, logger); err != nil {
		return err
	}

	// Only an existing config file tracks recent inputs
	if _, err := os.Stat(opts.configPath); err == nil {
		cfg.AddRecentInput(input)
		if err := project.SaveAppConfig(opts.configPath, cfg); err != nil {
			logger.Warn("Failed to update config", zap.Error(err))
		}
	}
	return nil
}

// writeOutputs saves the optional PDF, DXF and JSON files. Flags take
// precedence over paths from the config file.
func writeOutputs(opts *options, cfg model.AppConfig, report model.Report, settings model.Settings, logger *zap.Logger) error {
	pick := func(flag, configured string) string {
		if flag != "" {
			return flag
		}
		return configured
	}

	if path := pick(opts.pdfPath, cfg.PDFPath); path != "" {
		if err := export.ExportPDF(path, report, settings); err != nil {
			return fmt.Errorf("exporting PDF: %w", err)
		}
		logger.Info("PDF written", zap.String("path", path))
	}
	if path := pick(opts.dxfPath, cfg.DXFPath); path != "" {
		if err := export.ExportDXF(path, report); err != nil {
			return fmt.Errorf("exporting DXF: %w", err)
		}
		logger.Info("DXF written", zap.String("path", path))
	}
	if path := pick(opts.jsonPath, cfg.JSONPath); path != "" {
		if err := project.SaveResults(path, report, settings); err != nil {
			return fmt.Errorf("saving results: %w", err)
		}
		logger.Info("Results saved", zap.String("path", path))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
