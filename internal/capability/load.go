package capability

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format selects the capability definition syntax
type Format string

const (
	FormatAuto   Format = "auto"
	FormatIndent Format = "indent"
	FormatYAML   Format = "yaml"
)

// ConfigError reports a capability definition that could not be read.
// It is fatal: there is no fallback map.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("capability definition %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// LoadFile reads and parses the capability definition at path.
// FormatAuto picks YAML for .yaml/.yml files and the indentation format
// otherwise.
func LoadFile(path string, format Format) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	switch resolveFormat(path, format) {
	case FormatYAML:
		return ParseYAML(data), nil
	case FormatIndent:
		m, err := Parse(bytes.NewReader(data))
		if err != nil {
			return nil, &ConfigError{Path: path, Err: err}
		}
		return m, nil
	default:
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("unknown format %q", format)}
	}
}

func resolveFormat(path string, format Format) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatIndent
	}
}
