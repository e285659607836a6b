package config

import (
	"fmt"
	"os"

	yaml "go.yaml.in/yaml/v3"
)

type rosterMember struct {
	Name string `yaml:"name"`
}

type rosterDocument struct {
	Organists []rosterMember `yaml:"organists"`
}

// LoadRosterFile reads the ordered list of names from a YAML file. Both a
// document with an `organists` list of {name: ...} items and a bare list of
// strings are accepted.
func LoadRosterFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ROSTER_FILE %s: %w", path, err)
	}
	return parseRoster(data)
}

func parseRoster(data []byte) ([]string, error) {
	var plain []string
	if err := yaml.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}

	var doc rosterDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid roster yaml: %w", err)
	}
	names := make([]string, 0, len(doc.Organists))
	for _, m := range doc.Organists {
		names = append(names, m.Name)
	}
	return names, nil
}
