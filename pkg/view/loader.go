package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const viewsFile = "views.yaml"

// ViewsPath returns the compound view definitions file inside a data
// directory.
func ViewsPath(basePath string) string {
	return filepath.Join(basePath, viewsFile)
}

type viewsDocument struct {
	CustomViews []*CompoundView `yaml:"custom_views"`
}

// LoadViews reads the persisted compound view definitions. A missing file
// means no custom views, not an error.
func LoadViews(basePath string) ([]*CompoundView, error) {
	data, err := os.ReadFile(ViewsPath(basePath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var doc viewsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("view: parse %s: %w", viewsFile, err)
	}
	for _, cv := range doc.CustomViews {
		if err := cv.Validate(); err != nil {
			return nil, err
		}
	}
	return doc.CustomViews, nil
}
