// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package cmd provides the root command for the scloc CLI.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/defenseunicorns/scloc"
	"github.com/defenseunicorns/scloc/config"
	"github.com/defenseunicorns/scloc/settings"
)

// SettingsDirEnv overrides the directory holding the settings file
const SettingsDirEnv = "SCLOC_SETTINGS_DIR"

// app is the state shared by every sub-command, initialized once per invocation
type app struct {
	configPath  string
	settingsDir string

	fsys     afero.Fs
	cfg      *config.Config
	manager  *scloc.Manager
	settings *settings.Store
}

// NewRootCmd creates the root command for the scloc CLI.
func NewRootCmd() *cobra.Command {
	var (
		level string
		ver   bool
	)

	a := &app{}

	root := &cobra.Command{
		Use:   "scloc",
		Short: "Switch the language of a Star Citizen installation",
		Example: `
scloc find --save

scloc versions

scloc set german_(germany) --version LIVE

scloc install korean_(south_korea) --server https://translations.example.com
`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			l, err := log.ParseLevel(level)
			if err != nil {
				return err
			}
			log.FromContext(cmd.Context()).SetLevel(l)

			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !ver {
				return cmd.Help()
			}

			bi, ok := debug.ReadBuildInfo()
			if !ok {
				return fmt.Errorf("version information not available")
			}
			switch bi.Main.Path {
			case "github.com/defenseunicorns/scloc":
				fmt.Fprintln(cmd.OutOrStdout(), bi.Main.Version)
			default:
				for _, dep := range bi.Deps {
					if dep.Path == "github.com/defenseunicorns/scloc" {
						fmt.Fprintln(cmd.OutOrStdout(), dep.Version)
						break
					}
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&level, "log-level", "l", "info", "Set log level")
	_ = root.RegisterFlagCompletionFunc("log-level", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{log.DebugLevel.String(), log.InfoLevel.String(), log.WarnLevel.String(), log.ErrorLevel.String(), log.FatalLevel.String()}, cobra.ShellCompDirectiveNoFileComp
	})
	root.PersistentFlags().StringVar(&a.configPath, "config", "${HOME}/.scloc/config.yaml", "Path to scloc config file") // mirrors config.DefaultPath
	_ = root.MarkPersistentFlagFilename("config", "yaml", "yml")
	root.PersistentFlags().StringVar(&a.settingsDir, "settings-dir", "", "Directory holding config.json (defaults to the executable's directory)")
	_ = root.MarkPersistentFlagDirname("settings-dir")
	root.Flags().BoolVarP(&ver, "version", "V", false, "Print version number and exit")

	root.AddCommand(
		newFindCmd(a),
		newVersionsCmd(a),
		newSetCmd(a),
		newInstallCmd(a),
		newRemoveCmd(a),
		newStatusCmd(a),
		newCfgCmd(a),
		newLanguagesCmd(),
		newSettingsCmd(a),
		newWriteCmd(a),
	)

	return root
}

// setup loads the config file and builds the manager and settings store
func (a *app) setup(cmd *cobra.Command) error {
	a.fsys = afero.NewOsFs()

	// default < env < flags
	p := os.Getenv(config.EnvVar)
	if cmd.Flags().Changed("config") {
		p = a.configPath
	}
	if p == "" {
		var err error
		p, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(a.fsys, p)
	if err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	a.cfg = cfg

	opts := []scloc.ManagerOption{scloc.WithFS(a.fsys)}
	switch {
	case cfg.SkipLauncherCheck:
		opts = append(opts, scloc.WithLauncherExecutable(""))
	case cfg.LauncherExecutable != "":
		opts = append(opts, scloc.WithLauncherExecutable(cfg.LauncherExecutable))
	}
	if len(cfg.Channels) > 0 {
		opts = append(opts, scloc.WithChannels(cfg.Channels...))
	}
	a.manager = scloc.NewManager(opts...)

	dir := os.Getenv(SettingsDirEnv)
	if cmd.Flags().Changed("settings-dir") {
		dir = a.settingsDir
	}
	if dir == "" {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to get current executable path: %w", err)
		}
		dir = filepath.Dir(exe)
	}
	a.settings = settings.NewStore(a.fsys, dir)

	return nil
}

// baseFolder picks the base folder: flag, then saved settings, then discovery
func (a *app) baseFolder(ctx context.Context, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	logger := log.FromContext(ctx)

	saved, err := a.settings.Load(ctx)
	if err != nil {
		return "", err
	}
	if saved.BaseFolder != "" {
		logger.Debug("using saved base folder", "path", saved.BaseFolder)
		return saved.BaseFolder, nil
	}

	base, found, err := a.manager.FindBaseFolder(ctx)
	if err != nil {
		return "", err
	}
	if !found {
		return "", errors.New(`base folder not found, pass --base or select one with "scloc find"`)
	}
	logger.Info("found base folder", "path", base)
	return base, nil
}

// version picks the version folder name: flag, then saved settings, then empty for channel probing
func (a *app) version(ctx context.Context, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	saved, err := a.settings.Load(ctx)
	if err != nil {
		return "", err
	}
	return saved.Version, nil
}

// Main executes the root command for the scloc CLI.
//
// It returns 0 on success, 1 on failure and logs any errors.
func Main() int {
	cli := NewRootCmd()

	ctx := context.Background()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	logger.SetStyles(DefaultStyles())

	ctx = log.WithContext(ctx, logger)
	if err := cli.ExecuteContext(ctx); err != nil {
		logger.Error(err)
		return 1
	}
	return 0
}
