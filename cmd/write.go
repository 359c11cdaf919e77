// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newWriteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "write <path>",
		Short: "Write stdin to a text file, creating parent folders",
		Example: `
scloc write "C:/Roberts Space Industries/StarCitizen/LIVE/data/Localization/german_(germany)/global.ini" < global.ini
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				return errors.New("refusing to read file content from a terminal, pipe it on stdin")
			}

			b, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return a.manager.WriteTextFile(cmd.Context(), args[0], string(b))
		},
	}
}
