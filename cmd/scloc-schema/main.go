// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package main prints the JSON schema of the scloc config file.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/defenseunicorns/scloc/config"
)

func main() {
	b, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stdout, string(b))
}
