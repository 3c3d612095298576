package provider

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Dataset is the on-disk JSON exchange format for signal data: per-company
// metric scores plus optional per-horizon regime weights.
//
//	{
//	  "companies": {
//	    "ACME": {"constraint.power_access_good": 0.8, ...}
//	  },
//	  "regimes": {
//	    "2-5y": {"power_constrained_boom": 0.4, ...}
//	  }
//	}
type Dataset struct {
	Companies map[string]map[string]float64 `json:"companies" yaml:"companies"`
	Regimes   map[string]map[string]float64 `json:"regimes,omitempty" yaml:"regimes,omitempty"`
}

// LoadDataset reads a dataset file. The content is trusted as-is; the
// engine fails fast on whatever is missing at query time.
func LoadDataset(path string) (*Dataset, error) {
	if path == "" {
		return nil, errors.New("dataset path not specified")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening dataset file: %s", path)
	}
	defer f.Close()

	var ds Dataset
	if err := json.NewDecoder(f).Decode(&ds); err != nil {
		return nil, errors.Wrapf(err, "error decoding dataset file: %s", path)
	}
	return &ds, nil
}
