// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/defenseunicorns/scloc/settings"
)

func newFindCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Locate the Star Citizen base folder",
		Long: `Locate the Star Citizen base folder.

The launcher log under %APPDATA% is searched first, then the usual install locations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			base, found, err := a.manager.FindBaseFolder(ctx)
			if err != nil {
				return err
			}
			if !found {
				logger.Info("no base folder found, pass --base to other commands")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), base)

			if !save {
				return nil
			}
			if err := a.settings.Update(ctx, func(m map[string]any) {
				m[settings.KeyBaseFolder] = base
			}); err != nil {
				return err
			}
			logger.Debug("saved base folder", "path", a.settings.Path())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&save, "save", "s", false, "Save the found folder to settings")

	return cmd
}
