package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/soskin/vacancy-shadow-liability/internal/config"
	"github.com/soskin/vacancy-shadow-liability/internal/logger"
	"github.com/soskin/vacancy-shadow-liability/internal/server"
)

var (
	settingsFile string
	envFile      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "vsl",
		Short:        "Vacancy Shadow Liability (VSL) Model",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "Optional runtime settings file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before VSL_* overrides")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(compareCmd())
	rootCmd.AddCommand(explainCmd())
	rootCmd.AddCommand(scenariosCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup resolves configuration for cmd and initializes logging.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(config.Options{
		SettingsFile: settingsFile,
		EnvFile:      envFile,
		Flags:        cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "config.yaml", "Path to scenario config file")
}

func addScenarioFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("scenario", "s", "base", "Scenario to use")
}

func addInputFlag(cmd *cobra.Command, input *string) {
	cmd.Flags().StringVarP(input, "input", "i", "", "Path to input CSV file with neighborhood data")
	_ = cmd.MarkFlagRequired("input")
}

func runCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the VSL model and write neighborhood, summary, and chart outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			return runModel(cmd.OutOrStdout(), cfg, input)
		},
	}

	addInputFlag(cmd, &input)
	addScenarioFlag(cmd)
	addConfigFlag(cmd)
	cmd.Flags().StringP("output-dir", "o", "data/outputs", "Output directory")
	cmd.Flags().Bool("no-chart", false, "Skip rendering the chart")
	return cmd
}

func validateCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every scenario and the neighborhood data without running the model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			return runValidate(cmd.OutOrStdout(), cfg, input)
		},
	}

	addInputFlag(cmd, &input)
	addConfigFlag(cmd)
	return cmd
}

func compareCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run every scenario on the same data and compare citywide summaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			outDir := ""
			if cmd.Flags().Changed("output-dir") {
				outDir = cfg.OutputDir
			}
			return runCompare(cmd.OutOrStdout(), cfg, input, outDir)
		},
	}

	addInputFlag(cmd, &input)
	addConfigFlag(cmd)
	cmd.Flags().StringP("output-dir", "o", "data/outputs", "Write the comparison table to this directory")
	return cmd
}

func explainCmd() *cobra.Command {
	var input, neighborhood string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show the year-by-year foregone tax projection for one neighborhood",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			outDir := ""
			if cmd.Flags().Changed("output-dir") {
				outDir = cfg.OutputDir
			}
			return runExplain(cmd.OutOrStdout(), cfg, input, neighborhood, outDir)
		},
	}

	addInputFlag(cmd, &input)
	addScenarioFlag(cmd)
	addConfigFlag(cmd)
	cmd.Flags().StringVarP(&neighborhood, "neighborhood", "n", "", "Neighborhood name")
	cmd.Flags().StringP("output-dir", "o", "data/outputs", "Write the schedule table to this directory")
	_ = cmd.MarkFlagRequired("neighborhood")
	return cmd
}

func scenariosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios defined in the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			return runScenarios(cmd.OutOrStdout(), cfg)
		},
	}

	addConfigFlag(cmd)
	return cmd
}

func serveCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local HTTP API that runs the model on request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			srv := server.New(cfg.ConfigPath, input, cfg.Scenario, cfg.Server.Port)
			return srv.Start()
		},
	}

	addInputFlag(cmd, &input)
	addScenarioFlag(cmd)
	addConfigFlag(cmd)
	cmd.Flags().IntP("port", "p", 3000, "HTTP server port")
	return cmd
}
