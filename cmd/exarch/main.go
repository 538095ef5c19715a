// Command exarch extracts, creates, lists, and verifies TAR, ZIP, and
// 7z archives with adversarial-input-resistant defaults.
package main

import (
	"os"

	"github.com/bugops/exarch/cmd/exarch/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
