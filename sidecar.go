package fieldwatch

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lbreton/fieldwatch/internal"
)

// sidecarReaction is one declaration in a sidecar document.
type sidecarReaction struct {
	Method string   `yaml:"method"`
	Fields []string `yaml:"fields"`
}

// A sidecar document maps bound type names to reaction lists:
//
//	Camera:
//	  - method: OnLensChanged
//	    fields: [FocalLength, Aperture]
//	  - method: OnNameChanged
//	    fields: [Name]
//
// Types must be bound with BindType before loading; YAML cannot name Go
// types on its own.
type sidecarDoc map[string][]sidecarReaction

// LoadDeclarations reads sidecar declarations into the table.
func (t *Table) LoadDeclarations(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read declarations: %w", err)
	}

	var doc sidecarDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSidecar, err)
	}

	for name, reactions := range doc {
		typ, ok := t.table.TypeByName(name)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownType, name)
		}

		decls := make([]internal.Declaration, 0, len(reactions))
		for _, r := range reactions {
			decls = append(decls, internal.Declaration{Method: r.Method, Fields: r.Fields})
		}

		if err := t.table.Declare(typ, decls...); err != nil {
			return err
		}
	}

	return nil
}

// LoadDeclarationsFile loads sidecar declarations from a file into the table.
func (t *Table) LoadDeclarationsFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open declarations: %w", err)
	}
	defer f.Close()

	return t.LoadDeclarations(f)
}

// LoadDeclarations reads sidecar declarations into the default table.
func LoadDeclarations(r io.Reader) error {
	return defaultTable.LoadDeclarations(r)
}

// LoadDeclarationsFile loads a sidecar file into the default table.
func LoadDeclarationsFile(path string) error {
	return defaultTable.LoadDeclarationsFile(path)
}
