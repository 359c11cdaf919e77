// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package settings

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadWrite(t *testing.T) {
	ctx := log.WithContext(t.Context(), log.New(io.Discard))
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys, filepath.Join("opt", "scloc"))

	assert.Equal(t, filepath.Join("opt", "scloc", "config.json"), s.Path())

	text, err := s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "{}", text)

	// written as-is, no validation
	require.NoError(t, s.Write(ctx, `{"base_folder_path":"C:\\SC", "x": [1]}`))
	text, err = s.Read(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"base_folder_path":"C:\\SC","x":[1]}`, text)

	require.NoError(t, s.Write(ctx, "not json"))
	text, err = s.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "not json", text)
}

// openFailFs fails every Open
type openFailFs struct {
	afero.Fs
}

func (openFailFs) Open(name string) (afero.File, error) {
	return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
}

func TestReadError(t *testing.T) {
	s := NewStore(openFailFs{afero.NewMemMapFs()}, "dir")

	_, err := s.Read(t.Context())
	require.ErrorIs(t, err, os.ErrPermission)
	assert.EqualError(t, err, "failed to read settings file: open dir/config.json: permission denied")
}

func TestWriteReadOnly(t *testing.T) {
	s := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "dir")

	err := s.Write(t.Context(), "{}")
	require.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "failed to create parent directories for settings file")
}

func TestLoad(t *testing.T) {
	testCases := []struct {
		name        string
		content     string
		expected    Values
		expectedErr string
	}{
		{
			name: "no file",
		},
		{
			name:    "blank file",
			content: "  \n",
		},
		{
			name:    "all keys",
			content: `{"base_folder_path":"/sc","selected_language_code":"english","selected_version":"LIVE","app_language":"en"}`,
			expected: Values{
				BaseFolder:  "/sc",
				Language:    "english",
				Version:     "LIVE",
				AppLanguage: "en",
			},
		},
		{
			name:     "unknown keys and weak types",
			content:  `{"selected_version": 4, "window": {"w": 10}, "base_folder_path": null}`,
			expected: Values{Version: "4"},
		},
		{
			name:        "invalid json",
			content:     `{"base_folder_path":`,
			expectedErr: "failed to parse settings file",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			s := NewStore(fsys, "dir")
			if tc.content != "" {
				require.NoError(t, afero.WriteFile(fsys, s.Path(), []byte(tc.content), 0o644))
			}

			v, err := s.Load(t.Context())
			if tc.expectedErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestGet(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys, "dir")
	require.NoError(t, s.Write(t.Context(), `{"a":"x","b":2,"c":true,"d":{"e":1},"f":null}`))

	testCases := []struct {
		key      string
		expected string
		found    bool
	}{
		{key: "a", expected: "x", found: true},
		{key: "b", expected: "2", found: true},
		{key: "c", expected: "true", found: true},
		{key: "d", expected: `{"e":1}`, found: true},
		{key: "f"},
		{key: "missing"},
	}

	for _, tc := range testCases {
		got, found, err := s.Get(t.Context(), tc.key)
		require.NoError(t, err)
		assert.Equal(t, tc.found, found, tc.key)
		assert.Equal(t, tc.expected, got, tc.key)
	}
}

func TestUpdate(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys, filepath.Join("nested", "dir"))

	require.NoError(t, s.Update(t.Context(), func(m map[string]any) {
		m[KeyBaseFolder] = "/sc"
		m[KeyLanguage] = "english"
	}))

	text, err := s.Read(t.Context())
	require.NoError(t, err)
	assert.JSONEq(t, `{"base_folder_path":"/sc","selected_language_code":"english"}`, text)

	require.NoError(t, s.Write(t.Context(), `{"base_folder_path":"/sc","selected_language_code":"english","theme":"dark"}`))
	require.NoError(t, s.Update(t.Context(), func(m map[string]any) {
		m[KeyLanguage] = nil
	}))

	text, err = s.Read(t.Context())
	require.NoError(t, err)
	assert.JSONEq(t, `{"base_folder_path":"/sc","theme":"dark"}`, text)

	require.NoError(t, s.Write(t.Context(), `[]`))
	err = s.Update(t.Context(), func(map[string]any) {})
	require.Error(t, err)
}

func TestUpdateNullBlob(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s := NewStore(fsys, "dir")

	require.NoError(t, s.Write(t.Context(), "null"))
	require.NoError(t, s.Update(t.Context(), func(m map[string]any) {
		m[KeyBaseFolder] = "/sc"
	}))

	text, err := s.Read(t.Context())
	require.NoError(t, err)
	assert.JSONEq(t, `{"base_folder_path":"/sc"}`, text)

	require.NoError(t, s.Write(t.Context(), "null"))
	v, err := s.Load(t.Context())
	require.NoError(t, err)
	assert.Equal(t, Values{}, v)
}
