package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rohankatakam/recipegraph/internal/config"
	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/graph"
	"github.com/rohankatakam/recipegraph/internal/logging"
)

var (
	// Version information (set by build flags)
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"

	cfgFile   string
	verbose   bool
	logger    *logrus.Logger
	logCloser io.Closer
	cfg       *config.Config
)

func main() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		var typed *errors.Error
		if verbose && stderrors.As(err, &typed) {
			fmt.Fprint(os.Stderr, typed.DetailedString())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		// Configuration problems exit 2
		if errors.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "recipes",
	Short: "Recipe graph query service",
	Long: `Serves read-only queries over a Neo4j graph of authors, recipes and
ingredients, as a REST API or as MCP tools.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		// Initialize logger
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Log.Level
		logCfg.Format = cfg.Log.Format
		logCfg.OutputFile = cfg.Log.File
		if verbose {
			logCfg.Level = "debug"
		}
		logger, logCloser, err = logging.New(logCfg)
		if err != nil {
			return err
		}

		logger.WithFields(logrus.Fields{
			"command": cmd.Name(),
			"mode":    config.DetectMode().Description(),
		}).Debug("configuration loaded")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .recipes/recipes.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Set custom version template
	rootCmd.SetVersionTemplate(`recipes {{.Version}}
Build time: ` + BuildTime + `
Git commit: ` + GitCommit + `
`)

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(credentialsCmd)
}

// connect validates the configuration for the command and opens the graph client
func connect(ctx context.Context, vctx config.ValidationContext) (*graph.Client, error) {
	result := cfg.Validate(vctx)
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	return graph.NewClient(ctx, graph.Options{
		URI:                   cfg.Neo4j.URI,
		User:                  cfg.Neo4j.User,
		Password:              cfg.Neo4j.Password,
		Database:              cfg.Neo4j.Database,
		MaxPoolSize:           cfg.Neo4j.MaxPoolSize,
		AcquisitionTimeout:    cfg.Neo4j.AcquisitionTimeout,
		MaxConnectionLifetime: cfg.Neo4j.MaxConnectionLifetime,
		QueryTimeout:          cfg.Query.Timeout,
		WarningRatio:          cfg.Query.WarningRatio,
	}, logger)
}
