// Command morgue extracts bylined articles from scanned newspaper issues
// and publishes them to a catalog.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
