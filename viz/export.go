package viz

import (
	"encoding/json"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/choragraph/chora/errors"
)

// WriteJSON writes the visualization graph as indented JSON.
func WriteJSON(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(err, "encode graph JSON")
	}
	return nil
}

// WriteYAML writes the visualization graph as YAML.
func WriteYAML(w io.Writer, g *Graph) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(err, "encode graph YAML")
	}
	return nil
}

// ExportFile writes the graph to a file, choosing the format from the
// extension: .yaml/.yml for YAML, anything else JSON.
func ExportFile(path string, g *Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if hasYAMLExt(path) {
		return WriteYAML(f, g)
	}
	return WriteJSON(f, g)
}

func hasYAMLExt(path string) bool {
	for _, ext := range []string{".yaml", ".yml"} {
		if len(path) > len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}
