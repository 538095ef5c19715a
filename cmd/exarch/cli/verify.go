package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	exarch "github.com/bugops/exarch"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <archive>",
	Short: "Check an archive for security issues without extracting it",
	Long: `Verify runs every security validator extraction would against a
throwaway destination, accumulating every finding instead of aborting
on the first one, and never writing to the real filesystem.

Exit status is non-zero when the overall verdict is Fail.

Examples:
  exarch verify untrusted.zip
  exarch verify untrusted.zip --json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(_ *cobra.Command, args []string) error {
	archivePath := args[0]

	report, err := exarch.VerifyArchive(archivePath, nil)
	if err != nil {
		if viper.GetBool("json") {
			emitErrorJSON("verify", err)
			return err
		}
		return err
	}

	if viper.GetBool("json") {
		if err := emitVerificationJSON(report); err != nil {
			return err
		}
	} else {
		printVerificationReport(os.Stdout, report)
	}

	if report.Status == exarch.StatusFail {
		return fmt.Errorf("verification failed: %d issue(s)", len(report.Issues))
	}
	return nil
}

func printVerificationReport(w *os.File, report exarch.VerificationReport) {
	fmt.Fprintf(w, "status: %s\n", report.Status.String())
	for _, issue := range report.Issues {
		fmt.Fprintf(w, "  [%s] %s: %s (%s)\n", issue.Severity.String(), issue.Category, issue.Path, issue.Message)
	}
}
