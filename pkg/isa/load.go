package isa

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load reads a JSON catalog of the form {"mnemonic": ["C|R", "D", ...]}.
func Load(rd io.Reader) (Table, error) {
	var raw map[string][]string
	if err := json.NewDecoder(rd).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode instruction catalog: %w", err)
	}

	t := make(Table, len(raw))
	for mnemonic, params := range raw {
		if mnemonic == "" {
			return nil, fmt.Errorf("instruction catalog has an empty mnemonic")
		}
		types := make([]ParameterType, 0, len(params))
		for i, p := range params {
			pt, err := ParseParameterType(p)
			if err != nil {
				return nil, fmt.Errorf("%s parameter %d: %w", mnemonic, i, err)
			}
			types = append(types, pt)
		}
		t.Add(mnemonic, types...)
	}
	return t, nil
}

// LoadFile reads a catalog file and layers it over the built-in table.
func LoadFile(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	extra, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	t := Default()
	t.Merge(extra)
	return t, nil
}
