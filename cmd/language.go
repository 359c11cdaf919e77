// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package cmd

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/defenseunicorns/scloc"
	"github.com/defenseunicorns/scloc/settings"
	"github.com/defenseunicorns/scloc/translation"
)

func warnUnknownLanguage(logger *log.Logger, code string) {
	if _, ok := scloc.LookupLanguage(code); !ok {
		logger.Warn("language code is not a known Star Citizen localization", "code", code)
	}
}

// remember saves the selection so later commands can omit the flags
func (a *app) remember(cmd *cobra.Command, base, code, version string) error {
	return a.settings.Update(cmd.Context(), func(m map[string]any) {
		m[settings.KeyBaseFolder] = base
		m[settings.KeyLanguage] = code
		if version != "" {
			m[settings.KeyVersion] = version
		}
	})
}

func newSetCmd(a *app) *cobra.Command {
	var t target

	cmd := &cobra.Command{
		Use:               "set <code>",
		Short:             "Point a version's user.cfg at a language",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLanguages,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			code := args[0]

			warnUnknownLanguage(logger, code)

			base, version, err := t.resolve(ctx, a)
			if err != nil {
				return err
			}

			locDir, err := a.manager.SetLanguage(ctx, base, code, version)
			if err != nil {
				return err
			}
			logger.Info("language set", "code", code)
			fmt.Fprintln(cmd.OutOrStdout(), locDir)

			return a.remember(cmd, base, code, version)
		},
	}

	t.register(cmd.Flags(), true)
	_ = cmd.RegisterFlagCompletionFunc("version", t.completeVersions(a))

	return cmd
}

func newInstallCmd(a *app) *cobra.Command {
	var (
		t       target
		server  string
		file    string
		channel string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:               "install <code>",
		Short:             "Set a language and download its translation file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLanguages,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)
			code := args[0]

			if server == "" {
				server = a.cfg.ServerURL
			}
			if server == "" {
				return errors.New("no translation server configured, pass --server or set server-url in the config file")
			}
			if file == "" {
				file = a.cfg.RemoteFile
			}
			if file == "" {
				file = translation.DefaultFile
			}

			fetcher, err := translation.NewFetcher(&http.Client{Timeout: timeout}, server)
			if err != nil {
				return err
			}

			warnUnknownLanguage(logger, code)

			base, version, err := t.resolve(ctx, a)
			if err != nil {
				return err
			}

			dir, err := a.manager.ResolveVersion(ctx, base, version)
			if err != nil {
				return err
			}
			if channel == "" {
				channel = filepath.Base(dir)
			}

			logger.Info("downloading translation", "url", fetcher.URL(channel, file))
			text, err := fetcher.FetchString(ctx, channel, file)
			if err != nil {
				return err
			}

			locDir, err := a.manager.SetLanguage(ctx, base, code, version)
			if err != nil {
				return err
			}
			dst := filepath.Join(locDir, file)
			if err := a.manager.WriteTextFile(ctx, dst, text); err != nil {
				return err
			}
			logger.Info("language installed", "code", code, "file", dst)
			fmt.Fprintln(cmd.OutOrStdout(), dst)

			return a.remember(cmd, base, code, version)
		},
	}

	t.register(cmd.Flags(), true)
	_ = cmd.RegisterFlagCompletionFunc("version", t.completeVersions(a))
	cmd.Flags().StringVar(&server, "server", "", "Translation server base URL (overrides server-url)")
	cmd.Flags().StringVar(&file, "file", "", "Translation file to download (overrides remote-file)")
	cmd.Flags().StringVar(&channel, "channel", "", "Translation channel on the server (defaults to the version folder name)")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Minute, "HTTP timeout for the download")

	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var t target

	cmd := &cobra.Command{
		Use:               "remove <code>",
		Aliases:           []string{"rm"},
		Short:             "Delete a language folder and reset user.cfg",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLanguages,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			code := args[0]

			base, version, err := t.resolve(ctx, a)
			if err != nil {
				return err
			}

			if err := a.manager.RemoveLanguage(ctx, base, code, version); err != nil {
				return err
			}
			log.FromContext(ctx).Info("language removed", "code", code)

			return a.settings.Update(ctx, func(m map[string]any) {
				if m[settings.KeyLanguage] == code {
					m[settings.KeyLanguage] = nil
				}
			})
		},
	}

	t.register(cmd.Flags(), true)
	_ = cmd.RegisterFlagCompletionFunc("version", t.completeVersions(a))

	return cmd
}
