// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/defenseunicorns/scloc"
)

func newVersionsCmd(a *app) *cobra.Command {
	var t target

	cmd := &cobra.Command{
		Use:   "versions",
		Short: "List the installed version folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			base, err := a.baseFolder(ctx, t.base)
			if err != nil {
				return err
			}
			versions, err := a.manager.ListVersions(ctx, base)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				log.FromContext(ctx).Warn("no versions found", "base", base)
				return nil
			}
			for _, v := range versions {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}

	t.register(cmd.Flags(), false)

	return cmd
}

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the known language codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, l := range scloc.Languages() {
				fmt.Fprintf(w, "%s\t%s\n", l.Code, l.Name)
			}
			return w.Flush()
		},
	}
}

func newCfgCmd(a *app) *cobra.Command {
	var t target

	cmd := &cobra.Command{
		Use:   "cfg",
		Short: "Print a version's user.cfg",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			base, version, err := t.resolve(ctx, a)
			if err != nil {
				return err
			}
			content, found, err := a.manager.ReadUserConfig(ctx, base, version)
			if err != nil {
				return err
			}
			if !found {
				log.FromContext(ctx).Info(scloc.ConfigFileName + " does not exist yet")
				return nil
			}
			return scloc.PrintConfig(cmd.OutOrStdout(), content)
		},
	}

	t.register(cmd.Flags(), true)
	_ = cmd.RegisterFlagCompletionFunc("version", t.completeVersions(a))

	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var baseFlag string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize the language setup of every version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			base, err := a.baseFolder(ctx, baseFlag)
			if err != nil {
				return err
			}
			versions, err := a.manager.ListVersions(ctx, base)
			if err != nil {
				return err
			}

			var md strings.Builder
			fmt.Fprintf(&md, "# %s\n\n", base)
			if len(versions) == 0 {
				md.WriteString("No versions found.\n")
			} else {
				md.WriteString("| Version | Language | Installed |\n| --- | --- | --- |\n")
			}
			for _, v := range versions {
				current, ok, err := a.manager.CurrentLanguage(ctx, base, v)
				if err != nil {
					return err
				}
				if !ok {
					current = "-"
				}
				installed, err := a.manager.InstalledLanguages(ctx, base, v)
				if err != nil {
					return err
				}
				list := "-"
				if len(installed) > 0 {
					list = strings.Join(installed, ", ")
				}
				fmt.Fprintf(&md, "| %s | %s | %s |\n", v, escapeCell(current), escapeCell(list))
			}

			if termenv.EnvNoColor() {
				_, err := fmt.Fprint(cmd.OutOrStdout(), md.String())
				return err
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return err
			}
			out, err := r.Render(md.String())
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&baseFlag, "base", "b", "", "Base folder holding the version folders")

	return cmd
}

// escapeCell keeps markdown table cells intact
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
