package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document is the machine-readable form shared by JSON and YAML.
type document struct {
	Package      string  `json:"package" yaml:"package"`
	Source       string  `json:"source,omitempty" yaml:"source,omitempty"`
	Missing      []Entry `json:"missing" yaml:"missing"`
	MissingTest  []Entry `json:"missing_test" yaml:"missing_test"`
	Unneeded     []Entry `json:"unneeded" yaml:"unneeded"`
	ShouldBeTest []Entry `json:"should_be_test" yaml:"should_be_test"`
	UnneededTest []Entry `json:"unneeded_test" yaml:"unneeded_test"`
	ExitCode     int     `json:"exit_code" yaml:"exit_code"`
}

func toDocument(r *Report) document {
	entries := func(k Kind) []Entry {
		if e := r.Section(k).Entries; e != nil {
			return e
		}
		return []Entry{}
	}
	return document{
		Package:      r.Package,
		Source:       string(r.Source),
		Missing:      entries(KindMissing),
		MissingTest:  entries(KindMissingTest),
		Unneeded:     entries(KindUnneeded),
		ShouldBeTest: entries(KindShouldBeTest),
		UnneededTest: entries(KindUnneededTest),
		ExitCode:     r.ExitCode(),
	}
}

// WriteJSON encodes the report as indented JSON.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(r)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteYAML encodes the report as YAML.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocument(r)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return enc.Close()
}
