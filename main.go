package main

import (
	"fmt"
	"os"

	"github.com/temirov/rawdrop/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs the rawdrop interactive session.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
