package scan

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taskdrift/taskdrift/internal/domain"
)

// ManifestName is the board index file expected at the board root.
const ManifestName = "board.yaml"

// Manifest is the top-level board index: which subdirectory holds each
// status column. It is the one input whose absence is fatal.
type Manifest struct {
	Name    string            `yaml:"name,omitempty"`
	Columns map[string]string `yaml:"columns"`
}

// LoadManifest reads and validates the board manifest. A missing or
// corrupt manifest aborts the run; everything downstream assumes one.
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestName)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ManifestError{Path: path, Err: err}
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &domain.ManifestError{Path: path, Err: err}
	}

	if len(m.Columns) == 0 {
		m.Columns = make(map[string]string, len(domain.Pipeline))
		for _, s := range domain.Pipeline {
			m.Columns[string(s)] = string(s)
		}
	}
	return &m, nil
}
