// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// ListVersions returns the sorted names of the installed versions under base
//
// A subdirectory counts when it holds a data directory and, unless disabled,
// the launcher executable. Any entry that cannot be inspected fails the whole listing.
func (m *Manager) ListVersions(ctx context.Context, base string) ([]string, error) {
	logger := log.FromContext(ctx)

	entries, err := afero.ReadDir(m.fsys, base)
	if err != nil {
		return nil, fmt.Errorf("failed to read base folder %s: %w", base, err)
	}

	versions := make([]string, 0, len(entries))
	for _, entry := range entries {
		dir := filepath.Join(base, entry.Name())

		ok, err := m.isInstalledVersion(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to read entry %s: %w", dir, err)
		}
		if !ok {
			logger.Debug("not a version folder", "path", dir)
			continue
		}
		versions = append(versions, entry.Name())
	}

	slices.Sort(versions)
	return versions, nil
}

func (m *Manager) isInstalledVersion(dir string) (bool, error) {
	ok, err := m.isVersionDir(dir)
	if err != nil || !ok {
		return false, err
	}
	if m.launcher == "" {
		return true, nil
	}
	return m.isFile(filepath.Join(dir, m.launcher))
}

func (m *Manager) isVersionDir(dir string) (bool, error) {
	ok, err := m.isDir(dir)
	if err != nil || !ok {
		return false, err
	}
	return m.isDir(filepath.Join(dir, DataDirName))
}

// ResolveVersion returns the version folder to operate on
//
// A non-empty version is used as-is and must be a valid version folder under base.
// An empty version probes the configured channels in order and picks the first valid one.
func (m *Manager) ResolveVersion(ctx context.Context, base, version string) (string, error) {
	logger := log.FromContext(ctx)

	if version != "" {
		dir := filepath.Join(base, version)
		ok, err := m.isVersionDir(dir)
		if err != nil {
			return "", fmt.Errorf("failed to inspect version folder %s: %w", dir, err)
		}
		if !ok {
			return "", fmt.Errorf("%w: %s does not exist or has no %s directory", ErrInvalidVersion, dir, DataDirName)
		}
		return dir, nil
	}

	for _, channel := range m.channels {
		dir := filepath.Join(base, channel)
		ok, err := m.isVersionDir(dir)
		if err != nil {
			return "", fmt.Errorf("failed to inspect version folder %s: %w", dir, err)
		}
		if ok {
			logger.Debug("probed version folder", "channel", channel, "path", dir)
			return dir, nil
		}
	}

	return "", fmt.Errorf("%w: no %s folder found in %s", ErrInvalidVersion, strings.Join(m.channels, ", "), base)
}
