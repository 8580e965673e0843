// Copyright (c) Tailscale Inc & AUTHORS
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows
// +build windows

package declarative

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by LoadFile for files that are neither YAML
// nor TOML.
var ErrUnknownFormat = errors.New("unknown page document format")

// ParseYAML decodes a page document. Event handlers and AssignTo targets are
// not part of the document and must be set on the result before calling
// Create.
func ParseYAML(data []byte) (TaskDialogPage, error) {
	var tdp TaskDialogPage

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&tdp); err != nil {
		return TaskDialogPage{}, fmt.Errorf("failed to parse page document: %w", err)
	}
	return tdp, nil
}

// ParseTOML is like ParseYAML for TOML documents.
func ParseTOML(data []byte) (TaskDialogPage, error) {
	var tdp TaskDialogPage

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tdp); err != nil {
		return TaskDialogPage{}, fmt.Errorf("failed to parse page document: %w", err)
	}
	return tdp, nil
}

// LoadFile reads the page document at path. The format is chosen by the
// file extension: .yaml and .yml for YAML, .toml for TOML.
func LoadFile(path string) (TaskDialogPage, error) {
	var parse func([]byte) (TaskDialogPage, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parse = ParseYAML
	case ".toml":
		parse = ParseTOML
	default:
		return TaskDialogPage{}, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return TaskDialogPage{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	tdp, err := parse(data)
	if err != nil {
		return TaskDialogPage{}, fmt.Errorf("%s: %w", path, err)
	}
	return tdp, nil
}
