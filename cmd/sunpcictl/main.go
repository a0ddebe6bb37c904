// SPDX-License-Identifier: Apache-2.0

// sunpcictl controls a sunpci co-processor card from the command
// line: session lifecycle, virtual media, drive mappings, and disk
// image management.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
