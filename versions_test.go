// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installVersion lays out base/name the way the launcher installs a channel
func installVersion(t *testing.T, fsys afero.Fs, base, name string, withLauncher bool) string {
	t.Helper()

	dir := filepath.Join(base, name)
	require.NoError(t, fsys.MkdirAll(filepath.Join(dir, DataDirName), 0o755))
	if withLauncher {
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(dir, DefaultLauncherExecutable), []byte("MZ"), 0o755))
	}
	return dir
}

func TestListVersions(t *testing.T) {
	base := "/sc"

	t.Run("valid versions only, sorted", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		installVersion(t, fsys, base, "PTU", true)
		installVersion(t, fsys, base, "LIVE", true)
		installVersion(t, fsys, base, "EPTU", false)
		require.NoError(t, fsys.MkdirAll(filepath.Join(base, "old_backup"), 0o755))
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(base, "readme.txt"), []byte("hi"), 0o644))
		// launcher present but data is a file
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(base, "broken", DataDirName), nil, 0o644))
		require.NoError(t, afero.WriteFile(fsys, filepath.Join(base, "broken", DefaultLauncherExecutable), nil, 0o644))

		m := NewManager(WithFS(fsys))
		versions, err := m.ListVersions(t.Context(), base)
		require.NoError(t, err)
		assert.Equal(t, []string{"LIVE", "PTU"}, versions)
	})

	t.Run("example layout", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		installVersion(t, fsys, base, "LIVE", true)
		require.NoError(t, fsys.MkdirAll(filepath.Join(base, "old_backup"), 0o755))

		m := NewManager(WithFS(fsys))
		versions, err := m.ListVersions(t.Context(), base)
		require.NoError(t, err)
		assert.Equal(t, []string{"LIVE"}, versions)
	})

	t.Run("launcher check disabled", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		installVersion(t, fsys, base, "custom-build", false)
		installVersion(t, fsys, base, "LIVE", true)
		require.NoError(t, fsys.MkdirAll(filepath.Join(base, "old_backup"), 0o755))

		m := NewManager(WithFS(fsys), WithLauncherExecutable(""))
		versions, err := m.ListVersions(t.Context(), base)
		require.NoError(t, err)
		assert.Equal(t, []string{"LIVE", "custom-build"}, versions)
	})

	t.Run("empty base", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, fsys.MkdirAll(base, 0o755))

		m := NewManager(WithFS(fsys))
		versions, err := m.ListVersions(t.Context(), base)
		require.NoError(t, err)
		assert.Empty(t, versions)
	})

	t.Run("missing base", func(t *testing.T) {
		m := NewManager(WithFS(afero.NewMemMapFs()))
		versions, err := m.ListVersions(t.Context(), base)
		require.ErrorIs(t, err, os.ErrNotExist)
		assert.Contains(t, err.Error(), "failed to read base folder /sc")
		assert.Nil(t, versions)
	})

	t.Run("unreadable entry aborts", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		installVersion(t, fsys, base, "LIVE", true)
		installVersion(t, fsys, base, "PTU", true)

		m := NewManager(WithFS(&statFailFs{Fs: fsys, path: filepath.Join(base, "PTU", DataDirName)}))
		versions, err := m.ListVersions(t.Context(), base)
		require.EqualError(t, err, "failed to read entry /sc/PTU: permission denied")
		assert.Nil(t, versions)
	})
}

// statFailFs fails Stat for a single path
type statFailFs struct {
	afero.Fs
	path string
}

func (f *statFailFs) Stat(name string) (os.FileInfo, error) {
	if filepath.Clean(name) == f.path {
		return nil, os.ErrPermission
	}
	return f.Fs.Stat(name)
}

func TestResolveVersion(t *testing.T) {
	base := "/sc"

	testCases := []struct {
		name        string
		installed   []string
		version     string
		channels    []string
		expected    string
		expectedErr string
	}{
		{
			name:      "explicit",
			installed: []string{"LIVE", "my-build"},
			version:   "my-build",
			expected:  "/sc/my-build",
		},
		{
			name:        "explicit missing",
			installed:   []string{"LIVE"},
			version:     "PTU",
			expectedErr: "invalid version folder: /sc/PTU does not exist or has no data directory",
		},
		{
			name:      "probe prefers LIVE",
			installed: []string{"HOTFIX", "PTU", "LIVE"},
			expected:  "/sc/LIVE",
		},
		{
			name:      "probe falls through",
			installed: []string{"HOTFIX"},
			expected:  "/sc/HOTFIX",
		},
		{
			name:      "custom channel order",
			installed: []string{"LIVE", "PTU"},
			channels:  []string{"PTU", "LIVE"},
			expected:  "/sc/PTU",
		},
		{
			name:        "probe finds nothing",
			installed:   []string{"EPTU"},
			expectedErr: "invalid version folder: no LIVE, PTU, HOTFIX folder found in /sc",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			for _, v := range tc.installed {
				installVersion(t, fsys, base, v, false)
			}

			opts := []ManagerOption{WithFS(fsys)}
			if tc.channels != nil {
				opts = append(opts, WithChannels(tc.channels...))
			}
			m := NewManager(opts...)

			dir, err := m.ResolveVersion(t.Context(), base, tc.version)
			if tc.expectedErr != "" {
				require.EqualError(t, err, tc.expectedErr)
				assert.True(t, errors.Is(err, ErrInvalidVersion))
				assert.Empty(t, dir)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, dir)
		})
	}
}
