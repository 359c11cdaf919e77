// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// PrintConfig writes user.cfg content to w, highlighted as ini unless NO_COLOR is set
func PrintConfig(w io.Writer, content string) error {
	content = strings.TrimRight(content, "\r\n")

	if termenv.EnvNoColor() {
		_, err := fmt.Fprintln(w, content)
		return err
	}

	style := "tokyonight-day"
	if lipgloss.HasDarkBackground() {
		style = "tokyonight-moon"
	}

	var buf strings.Builder
	if err := quick.Highlight(&buf, content, "ini", "terminal256", style); err != nil {
		_, err := fmt.Fprintln(w, content)
		return err
	}

	_, err := fmt.Fprintln(w, strings.TrimRight(buf.String(), "\n"))
	return err
}
