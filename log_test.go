// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestPrintConfig(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "single line",
			content:  "g_language = english",
			expected: "g_language = english\n",
		},
		{
			name:     "trailing newlines trimmed",
			content:  "r_DisplayInfo = 0\ng_language = english\r\n\n",
			expected: "r_DisplayInfo = 0\ng_language = english\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name+" no color", func(t *testing.T) {
			t.Setenv("NO_COLOR", "true")

			var buf strings.Builder
			require.NoError(t, PrintConfig(&buf, tc.content))
			require.Equal(t, tc.expected, buf.String())
		})

		t.Run(tc.name+" highlighted", func(t *testing.T) {
			t.Setenv("NO_COLOR", "")

			var buf strings.Builder
			require.NoError(t, PrintConfig(&buf, tc.content))
			// the highlighter may close its escape sequences after the final newline
			require.Equal(t, strings.TrimSpace(tc.expected), strings.TrimSpace(ansi.Strip(buf.String())))
		})
	}
}
