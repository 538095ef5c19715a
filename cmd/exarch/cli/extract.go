package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	exarch "github.com/bugops/exarch"
)

var (
	extractMaxFileSize    byteSize
	extractMaxTotalSize   byteSize
	extractMaxFileCount   uint64
	extractMaxRatio       float64
	extractMaxDepth       int
	extractAllowSymlinks  bool
	extractAllowHardlinks bool
	extractAllowAbsolute  bool
	extractAllowWorldW    bool
	extractPreserveMode   bool
	extractPermissive     bool
	extractAllowedExts    []string
	extractBanComponents  []string
)

var extractCmd = &cobra.Command{
	Use:   "extract <archive> <output-dir>",
	Short: "Extract an archive into a directory",
	Long: `Extract decodes a TAR (gzip/bzip2/xz/zstd), ZIP, or 7z archive into
output-dir, which must already exist. Every entry is validated against
the destination before anything touches disk.

Examples:
  exarch extract release.tar.gz ./out
  exarch extract untrusted.zip ./out --max-compression-ratio 50
  exarch extract backup.tar.zst ./out --allow-symlinks --preserve-permissions`,
	Args: cobra.ExactArgs(2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().Var(&extractMaxFileSize, "max-file-size", "Maximum size of a single file (K/M/G/T suffix allowed)")
	extractCmd.Flags().Var(&extractMaxTotalSize, "max-total-size", "Maximum cumulative bytes written (K/M/G/T suffix allowed)")
	extractCmd.Flags().Uint64Var(&extractMaxFileCount, "max-file-count", 0, "Maximum number of files (0 keeps the default)")
	extractCmd.Flags().Float64Var(&extractMaxRatio, "max-compression-ratio", 0, "Maximum uncompressed/compressed ratio (0 keeps the default)")
	extractCmd.Flags().IntVar(&extractMaxDepth, "max-path-depth", 0, "Maximum path component depth (0 keeps the default)")
	extractCmd.Flags().BoolVar(&extractAllowSymlinks, "allow-symlinks", false, "Permit symlink entries")
	extractCmd.Flags().BoolVar(&extractAllowHardlinks, "allow-hardlinks", false, "Permit hardlink entries")
	extractCmd.Flags().BoolVar(&extractAllowAbsolute, "allow-absolute-paths", false, "Permit absolute entry paths")
	extractCmd.Flags().BoolVar(&extractAllowWorldW, "allow-world-writable", false, "Permit world-writable permission bits")
	extractCmd.Flags().BoolVar(&extractPreserveMode, "preserve-permissions", false, "Preserve the archive's file permissions")
	extractCmd.Flags().BoolVar(&extractPermissive, "permissive", false, "Start from the permissive preset instead of the secure default")
	extractCmd.Flags().StringSliceVar(&extractAllowedExts, "allowed-extensions", nil, "Only extract files with these extensions (repeatable; empty allows all)")
	extractCmd.Flags().StringArrayVar(&extractBanComponents, "ban-component", nil, "Additional path component name to reject (repeatable)")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	archivePath, outputDir := args[0], args[1]

	config := extractConfigFromFlags()

	cb, finish := newProgressCallback("Extracting")
	report, err := exarch.ExtractArchiveWithLogger(cmdContext(), archivePath, outputDir, config, cb, verboseLogger())
	finish()
	if err != nil {
		if viper.GetBool("json") {
			emitErrorJSON("extract", err)
			return err
		}
		return err
	}

	if viper.GetBool("json") {
		return emitExtractionJSON(report)
	}
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stdout, "extracted %d files, %d directories, %d symlinks, %d hardlinks (%s)\n",
			report.FilesExtracted, report.DirectoriesCreated, report.SymlinksCreated, report.HardlinksCreated, report.Duration)
	}
	return nil
}

func extractConfigFromFlags() *exarch.SecurityConfig {
	var config *exarch.SecurityConfig
	if extractPermissive {
		config = exarch.PermissiveSecurityConfig()
	} else {
		config = exarch.DefaultSecurityConfig()
	}

	if extractMaxFileSize > 0 {
		config.MaxFileSize = uint64(extractMaxFileSize)
	}
	if extractMaxTotalSize > 0 {
		config.MaxTotalSize = uint64(extractMaxTotalSize)
	}
	if extractMaxFileCount > 0 {
		config.MaxFileCount = extractMaxFileCount
	}
	if extractMaxRatio > 0 {
		config.MaxCompressionRatio = extractMaxRatio
	}
	if extractMaxDepth > 0 {
		config.MaxPathDepth = extractMaxDepth
	}
	if extractAllowSymlinks {
		config.Allowed.Symlinks = true
	}
	if extractAllowHardlinks {
		config.Allowed.Hardlinks = true
	}
	if extractAllowAbsolute {
		config.Allowed.AbsolutePaths = true
	}
	if extractAllowWorldW {
		config.Allowed.WorldWritable = true
	}
	if extractPreserveMode {
		config.PreservePermissions = true
	}
	if len(extractAllowedExts) > 0 {
		config.AllowedExtensions = extractAllowedExts
	}
	config.BannedPathComponents = append(config.BannedPathComponents, extractBanComponents...)
	return config
}
