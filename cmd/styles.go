// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// level colors from the tokyonight palettes, day variant for light terminals
var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.DebugLevel: {Light: "#2e7de9", Dark: "#7aa2f7"},
	log.InfoLevel:  {Light: "#587539", Dark: "#9ece6a"},
	log.WarnLevel:  {Light: "#8c6c3e", Dark: "#e0af68"},
	log.ErrorLevel: {Light: "#f52a65", Dark: "#f7768e"},
	log.FatalLevel: {Light: "#9854f1", Dark: "#bb9af7"},
}

// DefaultStyles returns the log styles used by the CLI.
func DefaultStyles() *log.Styles {
	styles := log.DefaultStyles()

	for level, color := range levelColors {
		styles.Levels[level] = styles.Levels[level].Foreground(color)
	}
	// paths are the most common value, keep them readable but quiet
	styles.Keys["path"] = lipgloss.NewStyle().Faint(true)

	return styles
}
