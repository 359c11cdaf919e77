// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

package scloc

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// WriteTextFile writes content to p, creating parent directories
//
// Forward slashes in p are converted to the host separator first.
func (m *Manager) WriteTextFile(ctx context.Context, p, content string) error {
	p = filepath.FromSlash(p)

	if err := m.fsys.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directories for %s: %w", p, err)
	}

	if err := afero.WriteFile(m.fsys, p, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", p, err)
	}

	log.FromContext(ctx).Debug("wrote file", "path", p, "bytes", len(content))
	return nil
}
