package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	exarch "github.com/bugops/exarch"
)

var (
	listLong  bool
	listHuman bool
)

var listCmd = &cobra.Command{
	Use:     "list <archive>",
	Aliases: []string{"ls"},
	Short:   "List the entries in an archive",
	Long: `List reads an archive's table of contents without extracting any
file data.

Examples:
  exarch list release.tar.gz
  exarch list -l -H release.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVarP(&listLong, "long", "l", false, "Use long listing format")
	listCmd.Flags().BoolVarP(&listHuman, "human-readable", "H", false, "Print sizes in human-readable format")
	rootCmd.AddCommand(listCmd)
}

func runList(_ *cobra.Command, args []string) error {
	archivePath := args[0]

	manifest, err := exarch.ListArchive(archivePath, nil)
	if err != nil {
		if viper.GetBool("json") {
			emitErrorJSON("list", err)
			return err
		}
		return err
	}

	if viper.GetBool("json") {
		return emitManifestJSON(manifest)
	}

	if listLong {
		printLongListing(os.Stdout, manifest)
	} else {
		printShortListing(os.Stdout, manifest)
	}
	return nil
}

func printShortListing(w io.Writer, manifest exarch.ArchiveManifest) {
	for _, e := range manifest.Entries {
		fmt.Fprintln(w, e.Path)
	}
}

func printLongListing(w io.Writer, manifest exarch.ArchiveManifest) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range manifest.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Kind.String(), formatEntrySize(e), entryDisplayPath(e))
	}
	tw.Flush()
}

func formatEntrySize(e exarch.ManifestEntry) string {
	if e.Kind == exarch.EntryDirectory {
		return "-"
	}
	if listHuman {
		return humanize.IBytes(e.UncompressedSize)
	}
	return strconv.FormatUint(e.UncompressedSize, 10)
}

func entryDisplayPath(e exarch.ManifestEntry) string {
	if e.LinkTarget != "" {
		return fmt.Sprintf("%s -> %s", e.Path, e.LinkTarget)
	}
	return e.Path
}
