package commands

import (
	"fmt"

	"github.com/dyluth/bugbash/internal/config"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bugbash",
	Short: "Bugbash - Bug bash triage for work item tracking",
	Long: `Bugbash manages time-boxed bug bash sessions on top of a work item
tracking service.

A bug bash groups reported items under a shared tag so they can be
triaged together: listed, accepted, rejected, or removed from the bash
without touching the underlying work items' other fields. Bash records
themselves live in a document store (Redis or a local bbolt file)
guarded by optimistic concurrency.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to bugbash.yml")
}
