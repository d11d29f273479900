// Command sitectl is the operator tool for the ad tech learning site: it
// lists routes, renders pages in-process, checks internal links and builds
// the favicon.
package main

import (
	"fmt"
	"os"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const appName = "sitectl"

func main() {
	if err := rootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
