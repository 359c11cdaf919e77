// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package main is the entry point for the scloc CLI
package main

import (
	"os"

	"github.com/defenseunicorns/scloc/cmd"
)

func main() {
	os.Exit(cmd.Main())
}
