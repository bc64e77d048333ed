// Package config loads the profile-based YAML configuration shared by the
// qdrant-manager and solr-manager tools.
//
// A config file maps profile names to profile blocks, each with a
// "connection" section holding tool-specific connection settings:
//
//	default:
//	  connection:
//	    url: localhost
//	    port: 6334
//	production:
//	  connection:
//	    url: qdrant.internal.example.com
//	    port: 6334
//	    api_key: ${QDRANT_API_KEY}
//
// Environment variables in the file are expanded before parsing. Each tool
// decodes the connection section into its own typed struct.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Filename is the config file name inside the per-tool config directory.
	Filename = "config.yaml"

	// DefaultProfile is used when no --profile flag is given.
	DefaultProfile = "default"
)

// File is a parsed configuration file.
type File struct {
	path     string
	profiles map[string]*Profile
}

// Profile is a single named profile from the file.
type Profile struct {
	Name       string
	connection *yaml.Node
}

// Dir returns the per-tool configuration directory, e.g.
// ~/.config/qdrant-manager on Linux.
func Dir(app string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine user config directory: %w", err)
	}
	return filepath.Join(base, app), nil
}

// Path returns the default config file path for a tool.
func Path(app string) (string, error) {
	dir, err := Dir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, Filename), nil
}

// FindPath resolves the config file to use. An explicit path wins; otherwise
// a file named after the tool in the working directory is tried, then the
// per-user config directory. The returned path may not exist yet when only
// the per-user location is left.
func FindPath(app, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidates := []string{
		app + ".yaml",
		app + ".yml",
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs, nil
		}
	}

	return Path(app)
}

// EnsureDefault writes a sample config file at the default location if no
// config file exists there yet. It reports whether a file was created so
// callers can tell the user to edit it before retrying.
func EnsureDefault(app, sample string) (path string, created bool, err error) {
	path, err = Path(app)
	if err != nil {
		return "", false, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		return "", false, fmt.Errorf("failed to write sample config: %w", err)
	}
	return path, true, nil
}

// Load reads and parses a config file, expanding environment variables in
// the raw content first.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(expanded), &root); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("config file %s is empty", path)
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config file %s is not a mapping of profiles", path)
	}

	f := &File{path: path, profiles: make(map[string]*Profile)}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		nameNode, body := doc.Content[i], doc.Content[i+1]
		p := &Profile{Name: nameNode.Value}
		if body.Kind == yaml.MappingNode {
			for j := 0; j+1 < len(body.Content); j += 2 {
				if body.Content[j].Value == "connection" {
					p.connection = body.Content[j+1]
				}
			}
		}
		f.profiles[p.Name] = p
	}

	return f, nil
}

// Names returns the profile names in the file, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.profiles))
	for name := range f.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile looks up a profile by name. An empty name selects the default
// profile. Unknown names produce an error listing what is available.
func (f *File) Profile(name string) (*Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	p, ok := f.profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found in %s (available: %s)",
			name, f.path, strings.Join(f.Names(), ", "))
	}
	if p.connection == nil {
		return nil, fmt.Errorf("profile %q in %s is missing the 'connection' section", name, f.path)
	}
	return p, nil
}

// Connection decodes the profile's connection section into out, which
// should be a pointer to the tool's connection struct.
func (p *Profile) Connection(out any) error {
	if err := p.connection.Decode(out); err != nil {
		return fmt.Errorf("invalid 'connection' section in profile %q: %w", p.Name, err)
	}
	return nil
}

// Profiles lists the profile names in a config file. When the file does not
// exist it returns just the default profile name, so the config command can
// still describe where a file would go.
func Profiles(path string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return []string{DefaultProfile}, nil
	}
	f, err := Load(path)
	if err != nil {
		return nil, err
	}
	return f.Names(), nil
}
