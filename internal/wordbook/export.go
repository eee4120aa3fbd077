package wordbook

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Format is the file format used by Export.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var (
	_          pflag.Value = (*Format)(nil)
	allFormats             = []Format{FormatJSON, FormatYAML}
)

func (f *Format) Set(val string) error {
	for _, format := range allFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid format: %s", val)
}

func (f Format) String() string {
	return string(f)
}

func (f *Format) Type() string {
	return "Format"
}

// AllFormats lists the supported export formats.
func AllFormats() []Format {
	return allFormats
}

// Export writes the store to path in the given format, independently of the primary file.
func (s *Store) Export(fsys afero.Fs, path string, format Format) error {
	var write func(f afero.File) error
	switch format {
	case FormatJSON, "":
		write = func(f afero.File) error {
			return encodeEntries(f, s.Entries())
		}
	case FormatYAML:
		write = func(f afero.File) error {
			return encodeYAML(f, s.Entries())
		}
	default:
		return &ValidationError{Field: "format", Reason: fmt.Sprintf("unsupported format %q", format)}
	}

	if err := writeFile(fsys, path, write); err != nil {
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// encodeYAML writes entries as a YAML mapping, keeping their order.
func encodeYAML(f afero.File, entries []Entry) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, entry := range entries {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Word},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Definition},
		)
	}

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(node); err != nil {
		return fmt.Errorf("yaml.Encoder.Encode > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("yaml.Encoder.Close > %w", err)
	}
	return nil
}
