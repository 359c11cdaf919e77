// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/defenseunicorns/scloc"
)

// target selects the installation a command operates on
type target struct {
	base    string
	version string
}

func (t *target) register(flags *pflag.FlagSet, withVersion bool) {
	flags.StringVarP(&t.base, "base", "b", "", "Base folder holding the version folders (defaults to saved settings, then discovery)")
	if withVersion {
		flags.StringVarP(&t.version, "version", "v", "", "Version folder to use (defaults to saved settings, then the first channel found)")
	}
}

// resolve fills in the base folder and version from settings or discovery
func (t *target) resolve(ctx context.Context, a *app) (string, string, error) {
	base, err := a.baseFolder(ctx, t.base)
	if err != nil {
		return "", "", err
	}
	version, err := a.version(ctx, t.version)
	if err != nil {
		return "", "", err
	}
	return base, version, nil
}

// completeVersions offers the version folders of the resolved base folder
func (t *target) completeVersions(a *app) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		if err := a.setup(cmd); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		base, err := a.baseFolder(cmd.Context(), t.base)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		versions, err := a.manager.ListVersions(cmd.Context(), base)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return versions, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeLanguages offers the known language codes for the first argument
func completeLanguages(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	langs := scloc.Languages()
	codes := make([]string, 0, len(langs))
	for _, l := range langs {
		codes = append(codes, l.Code+"\t"+l.Name)
	}
	return codes, cobra.ShellCompDirectiveNoFileComp
}
