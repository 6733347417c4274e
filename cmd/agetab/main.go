// Package main provides the CLI entrypoint for agetab.
//
// agetab converts tabular documents into a typed object graph:
//   - loads the schema (YAML) and an optional syntax profile (HCL)
//   - converts the document, infers GUESS types and imputes inverse relations
//   - prints a summary, a debug dump or the diagnostic tree
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
