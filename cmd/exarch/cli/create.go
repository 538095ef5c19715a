package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	exarch "github.com/bugops/exarch"
)

var (
	createExcludeHidden bool
	createExcludeGlobs  []string
)

var createCmd = &cobra.Command{
	Use:   "create <source-dir> <output-archive>",
	Short: "Create an archive from a directory",
	Long: `Create walks source-dir and writes a new archive to output-archive.
The container format is chosen from output-archive's extension: ".zip"
for ZIP, ".tar.gz"/".tgz" for gzip-compressed tar, anything else
ending ".tar" for uncompressed tar.

Examples:
  exarch create ./site site.tar.gz
  exarch create ./build release.zip --exclude-hidden --exclude '*.tmp'`,
	Args: cobra.ExactArgs(2),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().BoolVar(&createExcludeHidden, "exclude-hidden", false, "Skip dotfiles and dot-directories")
	createCmd.Flags().StringArrayVar(&createExcludeGlobs, "exclude", nil, "Glob pattern to exclude (repeatable)")
	rootCmd.AddCommand(createCmd)
}

func runCreate(_ *cobra.Command, args []string) error {
	sourceDir, outputArchive := args[0], args[1]
	filters := exarch.Filters{ExcludeHidden: createExcludeHidden, ExcludeGlobs: createExcludeGlobs}

	cb, finish := newProgressCallback("Creating")
	report, err := exarch.CreateArchiveWithProgress(cmdContext(), sourceDir, outputArchive, filters, cb)
	finish()
	if err != nil {
		if viper.GetBool("json") {
			emitErrorJSON("create", err)
			return err
		}
		return err
	}

	if viper.GetBool("json") {
		return emitCreationJSON(report)
	}
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stdout, "created %s: %d files, %d directories, %d symlinks (%s)\n",
			outputArchive, report.FilesAdded, report.DirectoriesAdded, report.SymlinksAdded, report.Duration)
	}
	return nil
}
