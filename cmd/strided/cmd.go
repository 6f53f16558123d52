package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/born-ml/strided/internal/envconfig"
	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI builds the root command with all subcommands.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "strided",
		Short:         "Minimal strided tensor engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: envconfig.LogLevel()})
			slog.SetDefault(slog.New(handler))
		},
		Run: func(cmd *cobra.Command, args []string) {
			if v, _ := cmd.Flags().GetBool("version"); v {
				versionHandler(cmd, args)
				return
			}
			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	envVars := envconfig.AsMap()
	demoCmd := newDemoCmd()
	benchCmd := newBenchCmd()

	appendEnvDocs(demoCmd, []envconfig.EnvVar{envVars["STRIDED_DEBUG"]})
	appendEnvDocs(benchCmd, []envconfig.EnvVar{
		envVars["STRIDED_DEBUG"],
		envVars["STRIDED_NUM_THREADS"],
		envVars["STRIDED_MAX_ALLOC_BYTES"],
	})

	rootCmd.AddCommand(newVersionCmd(), demoCmd, benchCmd)
	return rootCmd
}

func versionHandler(cmd *cobra.Command, _ []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "strided version %s\n", version)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run:   versionHandler,
	}
}

// debugEnv logs the effective configuration.
func debugEnv() {
	for k, v := range envconfig.Values() {
		slog.Debug("config", "key", k, "value", v)
	}
	if _, ok := os.LookupEnv("STRIDED_NUM_THREADS"); !ok {
		slog.Debug("config", "note", "STRIDED_NUM_THREADS unset, matmul runs on one goroutine")
	}
}
