package graphfile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

// Loader reads graph files. Files ending in .json are decoded as JSON,
// anything else as YAML.
type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.PackageSource = (*Loader)(nil)

func (l *Loader) LoadPackages(path string) ([]domain.GraphPackage, error) {
	return Load(path)
}

func Load(path string) ([]domain.GraphPackage, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "graphfile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto Graph
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(b, &dto)
	} else {
		err = yaml.Unmarshal(b, &dto)
	}
	if err != nil {
		return nil, &domain.OpError{
			Op:   "graphfile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapGraph(path, dto)
}
