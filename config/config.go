// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2025-Present Defense Unicorns

// Package config provides system-level configuration for scloc
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
	"github.com/spf13/afero"
	"github.com/xeipuuv/gojsonschema"
)

// SchemaVersion is the current schema version for configs
const SchemaVersion = "v0"

// Versioned is a tiny struct used to grab the schema version of a config file
type Versioned struct {
	SchemaVersion string `json:"schema-version"`
}

// Config is the system configuration file for scloc
type Config struct {
	SchemaVersion      string   `json:"schema-version"`
	ServerURL          string   `json:"server-url,omitempty"`
	RemoteFile         string   `json:"remote-file,omitempty"`
	LauncherExecutable string   `json:"launcher-executable,omitempty"`
	SkipLauncherCheck  bool     `json:"skip-launcher-check,omitempty"`
	Channels           []string `json:"channels,omitempty"`
}

// JSONSchemaExtend extends the JSON schema for a config
func (Config) JSONSchemaExtend(schema *jsonschema.Schema) {
	if schemaVersion, ok := schema.Properties.Get("schema-version"); ok && schemaVersion != nil {
		schemaVersion.Description = "Config schema version"
		schemaVersion.Enum = []any{SchemaVersion}
	}

	if serverURL, ok := schema.Properties.Get("server-url"); ok && serverURL != nil {
		serverURL.Description = "Base URL of the translation server, files are fetched from <server-url>/translations/<version>/<remote-file>"
		serverURL.Pattern = "^https?://"
	}

	if remoteFile, ok := schema.Properties.Get("remote-file"); ok && remoteFile != nil {
		remoteFile.Description = "Translation file to download and install into the localization folder"
		remoteFile.Pattern = `^[^/\\]+$`
	}

	if launcher, ok := schema.Properties.Get("launcher-executable"); ok && launcher != nil {
		launcher.Description = "Executable an installed version folder must contain"
	}

	if skip, ok := schema.Properties.Get("skip-launcher-check"); ok && skip != nil {
		skip.Description = "Only require the data directory when listing versions"
	}

	if channels, ok := schema.Properties.Get("channels"); ok && channels != nil {
		channels.Description = "Release channels probed, in order, when no version is given"
		minItems := uint64(1)
		channels.MinItems = &minItems
	}
}

// Default returns the config used when no config file exists
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
	}
}

// LoadConfig reads and validates a config file
//
// An empty file yields the default config.
func LoadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}

	var versioned Versioned
	if err := yaml.Unmarshal(data, &versioned); err != nil {
		return nil, err
	}

	switch version := versioned.SchemaVersion; version {
	case SchemaVersion:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}

		// validate the document itself, omitempty would hide keys like "channels: []"
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		if err := validate(gojsonschema.NewGoLoader(doc)); err != nil {
			return nil, err
		}
		return cfg, nil
	default:
		return nil, fmt.Errorf("unsupported config schema version: expected %q, got %q", SchemaVersion, version)
	}
}

// Load reads the config file at p
//
// If the file does not exist, this function returns the default config
func Load(fsys afero.Fs, p string) (*Config, error) {
	f, err := fsys.Open(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return LoadConfig(f)
}

// Since every validation operation leverages the same schema, only calculate it once
var schemaOnce = sync.OnceValues(func() (string, error) {
	b, err := json.Marshal(Schema())
	return string(b), err
})

// Validate checks if a config adheres to the JSON schema
func Validate(config *Config) error {
	return validate(gojsonschema.NewGoLoader(config))
}

func validate(doc gojsonschema.JSONLoader) error {
	schema, err := schemaOnce()
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), doc)
	if err != nil {
		return err
	}

	if result.Valid() {
		return nil
	}

	var resErr error
	for _, err := range result.Errors() {
		resErr = errors.Join(resErr, errors.New(err.String()))
	}

	return resErr
}

// Schema returns the JSON schema for the Config type
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&Config{})
}
