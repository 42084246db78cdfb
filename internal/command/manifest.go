package command

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"workbench/internal/errors"
	"workbench/internal/types"
	"workbench/internal/validation"
)

// Manifest is the YAML representation of a command descriptor. A manifest
// file declares how to build the command's container and how to invoke it.
type Manifest struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Documentation string   `yaml:"documentation"`
	Dockerfile    string   `yaml:"dockerfile"`
	Command       string   `yaml:"command"`
	Events        []string `yaml:"events"`
}

// Validate checks that the manifest declares everything a descriptor needs
func (m *Manifest) Validate() error {
	if err := validation.NonEmptyString(m.Name); err != nil {
		return errors.DescriptorInvalid(m.Name, "name is required")
	}
	if err := validation.NonEmptyString(m.Dockerfile); err != nil {
		return errors.DescriptorInvalid(m.Name, "dockerfile is required")
	}
	if err := validation.NonEmptyString(m.Command); err != nil {
		return errors.DescriptorInvalid(m.Name, "command is required")
	}
	return nil
}

// ManifestDescriptor adapts a Manifest to the Descriptor interface
type ManifestDescriptor struct {
	manifest Manifest
}

// NewManifestDescriptor creates a descriptor from a validated manifest
func NewManifestDescriptor(m Manifest) (*ManifestDescriptor, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &ManifestDescriptor{manifest: m}, nil
}

// Metadata returns the manifest's descriptive fields
func (d *ManifestDescriptor) Metadata() types.Metadata {
	return types.Metadata{
		Name:          d.manifest.Name,
		Description:   d.manifest.Description,
		Documentation: d.manifest.Documentation,
	}
}

// Dockerfile returns the container build script text
func (d *ManifestDescriptor) Dockerfile() string {
	return d.manifest.Dockerfile
}

// ExecutionCommand expands the manifest's command template with the supplied
// arguments. Placeholders use ${name} syntax; values are shell-escaped so
// argument content cannot break out of the command.
func (d *ManifestDescriptor) ExecutionCommand(args Args) string {
	return os.Expand(d.manifest.Command, func(key string) string {
		if value, ok := args[key]; ok {
			return validation.ShellEscape(value)
		}
		return ""
	})
}

// HandlesEvent reports whether the manifest lists the event type. An empty
// event list means the command handles any event.
func (d *ManifestDescriptor) HandlesEvent(eventType string) bool {
	if len(d.manifest.Events) == 0 {
		return true
	}
	for _, e := range d.manifest.Events {
		if e == eventType {
			return true
		}
	}
	return false
}

// LoadManifest reads and parses a single manifest file
func LoadManifest(path string) (*ManifestDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	return NewManifestDescriptor(m)
}

// LoadDir loads all manifest files (*.yaml, *.yml) from a directory.
// A missing directory is not an error; it yields no descriptors.
func LoadDir(dir string) ([]Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest directory %s: %w", dir, err)
	}

	var descriptors []Descriptor
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		d, err := LoadManifest(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}

	return descriptors, nil
}
