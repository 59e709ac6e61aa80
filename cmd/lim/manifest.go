package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest represents the parsed contents of lim.yml, the optional project
// file that lets `lim run` (with no file argument) find the entry script.
type Manifest struct {
	Path    string
	Name    string
	Version string
	Main    string
}

const manifestFileName = "lim.yml"

type manifestFile struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Main    string `yaml:"main"`
}

// LoadManifest parses a lim.yml from disk.
func LoadManifest(path string) (*Manifest, error) {
	if path == "" {
		return nil, fmt.Errorf("manifest: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw manifestFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("manifest: %s is empty", absPath)
		}
		return nil, fmt.Errorf("manifest: parse %s: %w", absPath, err)
	}

	m := &Manifest{
		Path:    absPath,
		Name:    strings.TrimSpace(raw.Name),
		Version: strings.TrimSpace(raw.Version),
		Main:    strings.TrimSpace(raw.Main),
	}
	if m.Main == "" {
		return nil, fmt.Errorf("manifest: %s: main must name the entry script", absPath)
	}
	return m, nil
}

// FindManifest walks from dir toward the filesystem root, looking for lim.yml.
// Returns the empty string when no manifest exists along the path.
func FindManifest(dir string) string {
	d, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(d, manifestFileName)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return candidate
		}
		parent := filepath.Dir(d)
		if parent == d {
			return ""
		}
		d = parent
	}
}

// MainScript resolves Main relative to the manifest's directory.
func (m *Manifest) MainScript() string {
	if filepath.IsAbs(m.Main) {
		return m.Main
	}
	return filepath.Join(filepath.Dir(m.Path), m.Main)
}
