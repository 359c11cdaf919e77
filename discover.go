// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

// AppDataEnv holds the per-user roaming application data directory on Windows
const AppDataEnv = "APPDATA"

// launchPattern matches the launcher announcing which version folder it started
var launchPattern = regexp.MustCompile(`Launching Star Citizen (?:LIVE|PTU|HOTFIX) from \((.*?)\)`)

// LauncherLogPath returns the location of the RSI launcher log under appData
func LauncherLogPath(appData string) string {
	return filepath.Join(appData, "rsilauncher", "logs", "log.log")
}

// DefaultCandidates returns the conventional install locations, in probe order
func DefaultCandidates() []string {
	sub := filepath.Join("Roberts Space Industries", "StarCitizen")
	roots := []string{
		`C:\Program Files`,
		`C:\Program Files (x86)`,
		`C:\`,
		`D:\`,
		`E:\`,
		`F:\`,
	}

	candidates := make([]string, 0, len(roots))
	for _, root := range roots {
		candidates = append(candidates, filepath.Join(root, sub))
	}
	return candidates
}

// BaseFolderFromLog scans launcher log text from the most recent line backwards
// and returns the parent of the first launched version folder it finds
func BaseFolderFromLog(r io.Reader) (string, bool, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", false, err
	}

	lines := strings.Split(string(b), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		match := launchPattern.FindStringSubmatch(strings.TrimSuffix(lines[i], "\r"))
		if match == nil {
			continue
		}
		parent, ok := parentDir(match[1])
		return parent, ok, nil
	}

	return "", false, nil
}

// parentDir splits on either separator since the log always holds Windows paths
func parentDir(p string) (string, bool) {
	p = strings.TrimRight(p, `\/`)
	i := strings.LastIndexAny(p, `\/`)
	if i < 0 {
		return "", false
	}

	parent := p[:i]
	if parent == "" || strings.HasSuffix(parent, ":") {
		// keep the root separator: "C:\LIVE" -> "C:\"
		parent = p[:i+1]
	}
	return parent, true
}

// FindBaseFolder locates the folder holding the installed game versions
//
// The launcher log is consulted first, then the conventional install locations.
// Finding nothing is not an error, the boolean reports whether a folder was found.
func (m *Manager) FindBaseFolder(ctx context.Context) (string, bool, error) {
	logger := log.FromContext(ctx)

	appData, ok := m.lookupEnv(AppDataEnv)
	if !ok || appData == "" {
		return "", false, fmt.Errorf("could not read %s environment variable, is the OS Windows?", AppDataEnv)
	}

	fromLog, found, err := m.baseFolderFromLauncherLog(LauncherLogPath(appData))
	if err != nil {
		return "", false, fmt.Errorf("failed to search launcher log: %w", err)
	}

	candidates := m.candidates
	if found {
		logger.Debug("launcher log names a base folder", "path", fromLog)
		candidates = []string{fromLog}
	}

	for _, candidate := range candidates {
		ok, err := m.isDir(candidate)
		if err != nil {
			logger.Debug("skipping base folder candidate", "path", candidate, "err", err)
			continue
		}
		if ok {
			return candidate, true, nil
		}
	}

	return "", false, nil
}

func (m *Manager) baseFolderFromLauncherLog(p string) (string, bool, error) {
	f, err := m.fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to open %s: %w", p, err)
	}
	defer f.Close()

	base, found, err := BaseFolderFromLog(f)
	if err != nil {
		return "", false, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return base, found, nil
}
