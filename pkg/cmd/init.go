// Package cmd wires the CLI: flag parsing, configuration, logging, and the
// run pipeline that builds, queries, and serves the index.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// BuildInfo holds the build metadata injected at compile time.
type BuildInfo struct {
	Version string
	AppName string
}

type cmdFlags struct {
	version    string
	appName    string
	ConfigPath string `mapstructure:"config"`
	LogLevel   string `mapstructure:"log_level"`
	TextFormat bool   `mapstructure:"log_text"`

	Path    string
	URL     string
	Limit   int
	Threads int
	Port    int

	IndexPath   string
	CountsPath  string
	QueryPath   string
	ResultsPath string
	Exact       bool

	threadsSet bool
	portSet    bool
}

// InitCommand initializes the root command of the CLI application with its flags.
func InitCommand(build BuildInfo) cobra.Command {
	flags := cmdFlags{
		version: build.Version,
		appName: build.AppName,
	}

	cmd := cobra.Command{
		Use:     flags.appName,
		Short:   "Contextual web search engine",
		Long:    "Scour builds an inverted index from a seed web page's linked neighborhood or a directory of text files, answers exact and prefix searches over it, and can serve a small search portal.",
		Version: flags.version,
		// Mode flags compose freely; anything unrecognized is ignored.
		FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags.threadsSet = cmd.Flags().Changed("threads")
			flags.portSet = cmd.Flags().Changed("port")

			return RunCommand(cmd.Context(), &flags)
		},
	}

	cmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&flags.TextFormat, "log-text", true, "log in text format, otherwise JSON")
	cmd.PersistentFlags().StringVar(&flags.ConfigPath, "config", "", "path to the configuration file")

	cmd.Flags().StringVar(&flags.Path, "path", "", "index text files under this path")
	cmd.Flags().StringVar(&flags.URL, "url", "", "crawl from this seed URL")
	cmd.Flags().IntVar(&flags.Limit, "limit", 50, "maximum locations to index via crawl")
	cmd.Flags().IntVar(&flags.Threads, "threads", 0, "worker pool size")
	cmd.Flags().IntVar(&flags.Port, "port", 8080, "serve the web portal on this port")

	cmd.Flags().StringVar(&flags.IndexPath, "index", "", "write the index as JSON to this file")
	cmd.Flags().StringVar(&flags.CountsPath, "counts", "", "write location word counts as JSON to this file")
	cmd.Flags().StringVar(&flags.QueryPath, "query", "", "process queries line by line from this file")
	cmd.Flags().BoolVar(&flags.Exact, "exact", false, "use exact search instead of prefix search")
	cmd.Flags().StringVar(&flags.ResultsPath, "results", "", "write query results as JSON to this file")

	// Output flags work bare: --index alone picks the conventional filename.
	cmd.Flags().Lookup("index").NoOptDefVal = "index.json"
	cmd.Flags().Lookup("counts").NoOptDefVal = "counts.json"
	cmd.Flags().Lookup("results").NoOptDefVal = "results.json"
	cmd.Flags().Lookup("port").NoOptDefVal = "8080"

	for _, name := range []string{"log_level", "log_text"} {
		if err := viper.BindEnv(name); err != nil {
			slog.Error("failed to bind env var", "name", name, "error", err)
		}
	}

	viper.AutomaticEnv()

	if err := viper.Unmarshal(&flags); err != nil {
		slog.Error("failed to unmarshal env vars", "error", err)
	}

	return cmd
}
