// Command offdump writes, inspects and verifies offptr snapshots.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
