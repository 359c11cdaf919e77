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
	"gopkg.in/ini.v1"
)

// isLanguageDirective reports whether line is "g_language", optional whitespace, then "="
func isLanguageDirective(line string) bool {
	rest, ok := strings.CutPrefix(line, LanguageKey)
	if !ok {
		return false
	}
	rest = strings.TrimLeft(rest, " \t\v\f\r")
	return strings.HasPrefix(rest, "=")
}

func languageLine(code string) string {
	return LanguageKey + " = " + code
}

// UpsertLanguageLine points every language directive in content at code,
// or appends one as the last line when there is none
func UpsertLanguageLine(content, code string) string {
	lines := strings.Split(content, "\n")

	replaced := false
	for i, line := range lines {
		if !isLanguageDirective(line) {
			continue
		}
		eol := ""
		if strings.HasSuffix(line, "\r") {
			eol = "\r"
		}
		lines[i] = languageLine(code) + eol
		replaced = true
	}

	if replaced {
		return strings.Join(lines, "\n")
	}

	var b strings.Builder
	b.WriteString(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(languageLine(code))
	b.WriteByte('\n')
	return b.String()
}

// RemoveLanguageLine drops every language directive from content along with the newline before it
//
// A directive on the first line has no newline before it, so only its text goes
// and the file keeps a leading blank line.
func RemoveLanguageLine(content string) string {
	lines := strings.Split(content, "\n")

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if !isLanguageDirective(line) {
			kept = append(kept, line)
			continue
		}
		if i == 0 {
			kept = append(kept, "")
		}
	}

	return strings.Join(kept, "\n")
}

// ValidateLanguageCode rejects codes that would not name a single localization folder
func ValidateLanguageCode(code string) error {
	switch {
	case code == "":
		return fmt.Errorf("%w: code is empty", ErrInvalidLanguage)
	case code == "." || code == "..", strings.ContainsAny(code, "/\\\r\n"):
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, code)
	}
	return nil
}

// SetLanguage writes the language directive for code into the version's user.cfg
// and creates data/Localization/<code>, returning that folder's path
//
// A missing user.cfg is created. The two writes are not atomic with respect to each other.
func (m *Manager) SetLanguage(ctx context.Context, base, code, version string) (string, error) {
	logger := log.FromContext(ctx)

	if err := ValidateLanguageCode(code); err != nil {
		return "", err
	}

	dir, err := m.ResolveVersion(ctx, base, version)
	if err != nil {
		return "", err
	}

	cfgPath := filepath.Join(dir, ConfigFileName)
	content, _, err := m.readFile(cfgPath)
	if err != nil {
		return "", err
	}

	if err := afero.WriteFile(m.fsys, cfgPath, []byte(UpsertLanguageLine(content, code)), 0o644); err != nil {
		return "", fmt.Errorf("failed to write to %s: %w", cfgPath, err)
	}
	logger.Debug("updated config", "path", cfgPath, "language", code)

	locDir := LocalizationDir(dir, code)
	if err := m.fsys.MkdirAll(locDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create localization folder at %s: %w", locDir, err)
	}

	return locDir, nil
}

// RemoveLanguage deletes data/Localization/<code> and strips the language directive from user.cfg
//
// Either being absent already is not an error.
func (m *Manager) RemoveLanguage(ctx context.Context, base, code, version string) error {
	logger := log.FromContext(ctx)

	if err := ValidateLanguageCode(code); err != nil {
		return err
	}

	dir, err := m.ResolveVersion(ctx, base, version)
	if err != nil {
		return err
	}

	locDir := LocalizationDir(dir, code)
	exists, err := afero.Exists(m.fsys, locDir)
	if err != nil {
		return fmt.Errorf("failed to inspect localization folder at %s: %w", locDir, err)
	}
	if exists {
		if err := m.fsys.RemoveAll(locDir); err != nil {
			return fmt.Errorf("failed to delete localization folder at %s: %w", locDir, err)
		}
		logger.Debug("deleted localization folder", "path", locDir)
	}

	cfgPath := filepath.Join(dir, ConfigFileName)
	content, found, err := m.readFile(cfgPath)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	if err := afero.WriteFile(m.fsys, cfgPath, []byte(RemoveLanguageLine(content)), 0o644); err != nil {
		return fmt.Errorf("failed to write updated %s: %w", cfgPath, err)
	}
	return nil
}

// ReadUserConfig returns the text of the version's user.cfg, or false if it does not exist
func (m *Manager) ReadUserConfig(ctx context.Context, base, version string) (string, bool, error) {
	dir, err := m.ResolveVersion(ctx, base, version)
	if err != nil {
		return "", false, err
	}
	return m.readFile(filepath.Join(dir, ConfigFileName))
}

// CurrentLanguage reports the language user.cfg selects for a version
func (m *Manager) CurrentLanguage(ctx context.Context, base, version string) (string, bool, error) {
	content, found, err := m.ReadUserConfig(ctx, base, version)
	if err != nil || !found {
		return "", false, err
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:     true,
		SkipUnrecognizableLines: true,
	}, []byte(content))
	if err != nil {
		return "", false, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	sec := cfg.Section(ini.DefaultSection)
	if !sec.HasKey(LanguageKey) {
		return "", false, nil
	}
	return sec.Key(LanguageKey).String(), true, nil
}

// InstalledLanguages lists the localization folders present for a version
func (m *Manager) InstalledLanguages(ctx context.Context, base, version string) ([]string, error) {
	dir, err := m.ResolveVersion(ctx, base, version)
	if err != nil {
		return nil, err
	}

	locRoot := filepath.Join(dir, DataDirName, LocalizationDirName)
	ok, err := m.isDir(locRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect %s: %w", locRoot, err)
	}
	if !ok {
		return []string{}, nil
	}

	entries, err := afero.ReadDir(m.fsys, locRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", locRoot, err)
	}

	codes := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			codes = append(codes, entry.Name())
		}
	}
	slices.Sort(codes)
	return codes, nil
}
