// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package settings persists the application's settings blob
package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cast"
)

// FileName is the settings file kept in the settings directory
const FileName = "config.json"

// Empty is returned when no settings have been written yet
const Empty = "{}"

// Known settings keys
const (
	KeyBaseFolder = "base_folder_path"
	KeyLanguage   = "selected_language_code"
	KeyVersion    = "selected_version"
	KeyAppLang    = "app_language"
)

// Values is the typed view of the keys scloc itself reads
type Values struct {
	BaseFolder  string `json:"base_folder_path,omitempty"`
	Language    string `json:"selected_language_code,omitempty"`
	Version     string `json:"selected_version,omitempty"`
	AppLanguage string `json:"app_language,omitempty"`
}

// Store reads and writes the settings file inside a fixed directory
//
// The blob is opaque to Read and Write, only Load, Get and Update look inside it.
type Store struct {
	fsys afero.Fs
	dir  string
}

// NewStore creates a store for the settings file inside dir
func NewStore(fsys afero.Fs, dir string) *Store {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	return &Store{fsys: fsys, dir: dir}
}

// Path returns the location of the settings file
func (s *Store) Path() string {
	return filepath.Join(s.dir, FileName)
}

// Read returns the settings text, or "{}" if nothing has been written yet
func (s *Store) Read(ctx context.Context) (string, error) {
	p := s.Path()
	log.FromContext(ctx).Debug("settings file", "path", p)

	b, err := afero.ReadFile(s.fsys, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Empty, nil
		}
		return "", fmt.Errorf("failed to read settings file: %w", err)
	}
	return string(b), nil
}

// Write replaces the settings text, creating the settings directory if needed
func (s *Store) Write(ctx context.Context, text string) error {
	p := s.Path()
	log.FromContext(ctx).Debug("settings file", "path", p)

	if err := s.fsys.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directories for settings file: %w", err)
	}
	if err := afero.WriteFile(s.fsys, p, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (s *Store) decode(ctx context.Context) (map[string]any, error) {
	text, err := s.Read(ctx)
	if err != nil {
		return nil, err
	}

	m := map[string]any{}
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return m, nil
	}
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", s.Path(), err)
	}
	// a literal null decodes to a nil map
	if m == nil {
		m = map[string]any{}
	}
	return m, nil
}

// Load decodes the known keys of the settings blob
func (s *Store) Load(ctx context.Context) (Values, error) {
	var v Values

	m, err := s.decode(ctx)
	if err != nil {
		return v, err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           &v,
	})
	if err != nil {
		return v, err
	}
	if err := decoder.Decode(m); err != nil {
		return v, fmt.Errorf("failed to decode settings file %s: %w", s.Path(), err)
	}
	return v, nil
}

// Get returns a single key as a string, and whether it is set
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	m, err := s.decode(ctx)
	if err != nil {
		return "", false, err
	}

	raw, ok := m[key]
	if !ok || raw == nil {
		return "", false, nil
	}

	switch raw.(type) {
	case map[string]any, []any:
		b, err := json.Marshal(raw)
		if err != nil {
			return "", false, err
		}
		return string(b), true, nil
	}

	str, err := cast.ToStringE(raw)
	if err != nil {
		return "", false, fmt.Errorf("settings key %q: %w", key, err)
	}
	return str, true, nil
}

// Update applies fn to the decoded settings and writes them back
//
// Keys fn does not touch are written back unchanged. Setting a key to nil removes it.
func (s *Store) Update(ctx context.Context, fn func(map[string]any)) error {
	m, err := s.decode(ctx)
	if err != nil {
		return err
	}

	fn(m)

	for k, v := range m {
		if v == nil {
			delete(m, k)
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	return s.Write(ctx, string(b))
}
