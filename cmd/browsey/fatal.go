package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/browsey/browsey/pkg/apierror"
)

// warning prints a warning message to standard error.
func warning(message string) {
	fmt.Fprintln(color.Error, color.YellowString("Warning:"), message)
}

// fatal flattens err through apierror (this is the one place in the whole
// module that's allowed to call Flatten — everywhere below the command
// boundary returns typed errors instead) and terminates the process.
func fatal(err error) {
	flattened := apierror.Flatten(err)
	if rootConfiguration.json {
		encoded, _ := json.Marshal(struct {
			Error apierror.Error `json:"error"`
		}{Error: flattened})
		fmt.Fprintln(os.Stdout, string(encoded))
	} else {
		fmt.Fprintln(os.Stderr, color.RedString("Error:"), flattened.Message)
	}
	os.Exit(1)
}

// printResult prints a successful command result: one JSON object to
// stdout in JSON mode, or a best-effort human summary otherwise.
func printResult(v interface{}) {
	if rootConfiguration.json {
		encoded, err := json.Marshal(v)
		if err != nil {
			fatal(err)
		}
		fmt.Fprintln(os.Stdout, string(encoded))
		return
	}
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal(err)
	}
	fmt.Fprintln(os.Stdout, string(encoded))
}
