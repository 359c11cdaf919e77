// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package scloc locates a Star Citizen installation and manages its localization settings.
package scloc

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// ConfigFileName is the per-version user configuration file
	ConfigFileName = "user.cfg"
	// DataDirName is the directory every valid version folder contains
	DataDirName = "data"
	// LocalizationDirName is the directory under data holding one folder per installed language
	LocalizationDirName = "Localization"
	// LanguageKey is the user.cfg key selecting the game language
	LanguageKey = "g_language"
	// DefaultLauncherExecutable must sit next to the data directory of an installed version
	DefaultLauncherExecutable = "StarCitizen_Launcher.exe"
)

// DefaultChannels are the release channels probed, in order, when no version is given
var DefaultChannels = []string{"LIVE", "PTU", "HOTFIX"}

var (
	// ErrInvalidVersion is returned when a version folder cannot be resolved
	ErrInvalidVersion = errors.New("invalid version folder")
	// ErrInvalidLanguage is returned for language codes that cannot name a localization folder
	ErrInvalidLanguage = errors.New("invalid language code")
)

// Manager performs the filesystem operations behind every localization command
type Manager struct {
	fsys       afero.Fs
	lookupEnv  func(string) (string, bool)
	candidates []string
	launcher   string
	channels   []string
}

// ManagerOption is a function that configures a Manager
type ManagerOption func(*Manager)

// WithFS sets the filesystem used by the manager
func WithFS(fsys afero.Fs) ManagerOption {
	return func(m *Manager) {
		m.fsys = fsys
	}
}

// WithLookupEnv sets the environment lookup used to locate the launcher log
func WithLookupEnv(lookup func(string) (string, bool)) ManagerOption {
	return func(m *Manager) {
		m.lookupEnv = lookup
	}
}

// WithCandidates replaces the conventional install locations probed when the launcher log has no answer
func WithCandidates(candidates ...string) ManagerOption {
	return func(m *Manager) {
		m.candidates = candidates
	}
}

// WithLauncherExecutable sets the executable a version folder must contain
//
// An empty name only requires the data directory.
func WithLauncherExecutable(name string) ManagerOption {
	return func(m *Manager) {
		m.launcher = name
	}
}

// WithChannels sets the release channels probed when no version is given
func WithChannels(channels ...string) ManagerOption {
	return func(m *Manager) {
		m.channels = channels
	}
}

// NewManager creates a new Manager, defaulting to the OS filesystem and environment
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		candidates: DefaultCandidates(),
		launcher:   DefaultLauncherExecutable,
		channels:   DefaultChannels,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.fsys == nil {
		m.fsys = afero.NewOsFs()
	}

	if m.lookupEnv == nil {
		m.lookupEnv = os.LookupEnv
	}

	return m
}

// LocalizationDir returns the folder signalling that language code is installed for a version
func LocalizationDir(versionDir, code string) string {
	return filepath.Join(versionDir, DataDirName, LocalizationDirName, code)
}

func (m *Manager) isDir(p string) (bool, error) {
	fi, err := m.fsys.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}

func (m *Manager) isFile(p string) (bool, error) {
	fi, err := m.fsys.Stat(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return fi.Mode().IsRegular(), nil
}

// readFile returns the file's text, or false when it does not exist
func (m *Manager) readFile(p string) (string, bool, error) {
	b, err := afero.ReadFile(m.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return string(b), true, nil
}
