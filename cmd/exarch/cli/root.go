// Package cli implements the exarch command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Build information set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// cfgFile is the path to the config file (set via --config flag).
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "exarch",
	Short: "Secure extraction and creation of TAR, ZIP, and 7z archives",
	Long: `exarch extracts, creates, lists, and verifies archives while defending
against adversarial inputs: path traversal, symlink/hardlink escapes,
zip bombs, and permission abuse.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: validateOutputMode,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose diagnostic output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().Bool("json", false, "Emit machine-readable JSON output")

	//nolint:errcheck // flags are defined above, Lookup never returns nil here
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	//nolint:errcheck
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	//nolint:errcheck
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	rootCmd.Version = version
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("exarch")
		viper.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("EXARCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		fmt.Fprintln(os.Stderr, "Using config:", viper.ConfigFileUsed())
	}
}

// verboseLogger returns a stderr text-handler logger at Debug level
// when --verbose is set, and a discarding logger otherwise.
func verboseLogger() *slog.Logger {
	if !viper.GetBool("verbose") {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// validateOutputMode rejects --verbose combined with --quiet before any
// subcommand runs.
func validateOutputMode(*cobra.Command, []string) error {
	if viper.GetBool("verbose") && viper.GetBool("quiet") {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	return nil
}

// Execute runs the root command. In --json mode the subcommand already
// emitted a machine-readable error envelope on stdout, so only the
// human rendering is suppressed; the exit code stays non-zero either
// way.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !viper.GetBool("json") {
		fmt.Fprintln(os.Stderr, formatError(err))
	}
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("exarch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
