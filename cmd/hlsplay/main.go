// Command hlsplay fetches an HLS playlist from disk, HTTP, or S3, decodes
// it, and prints the parsed record.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
