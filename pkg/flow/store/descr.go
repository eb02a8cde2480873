package store

import (
	"fmt"

	"github.com/randalmurphal/dsplab/pkg/flow/descr"
)

// SaveDescr verifies d and saves it as JSON under name.
// Invalid descriptions are never stored.
func SaveDescr(s Store, name string, d *descr.Plan) error {
	if err := descr.Verify(d); err != nil {
		return err
	}
	data, err := descr.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode plan %s: %w", name, err)
	}
	return s.Save(name, data)
}

// LoadDescr loads and decodes the description stored under name.
func LoadDescr(s Store, name string) (*descr.Plan, error) {
	data, err := s.Load(name)
	if err != nil {
		return nil, err
	}
	d, err := descr.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode plan %s: %w", name, err)
	}
	return d, nil
}
