// Command inspectreport renders inspection records to PDF reports.
//
// # Installation
//
//	go install github.com/lvillar/inspectreport/cmd/inspectreport@latest
//
// # Usage
//
//	inspectreport render inspection.yaml -o report.pdf
//	inspectreport validate inspection.json
//	inspectreport fonts
//	inspectreport mcp
//
// Settings come from --config (YAML), a .env file and INSPECTREPORT_*
// environment variables. Logs go to stderr.
package main

import (
	"fmt"
	"os"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inspectreport: %v\n", err)
		os.Exit(1)
	}
}
