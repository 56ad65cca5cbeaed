package roster

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadFile reads a YAML roster file of the form:
//
//	teams:
//	  - id: 1
//	    name: Lakers
//	    color: "#552583"
//	    logo: lakers.png
//	    contributors: [LeBron James, Anthony Davis]
func LoadFile(path string) (*Roster, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load roster %s: %w", path, err)
	}
	var teams []Team
	if err := k.UnmarshalWithConf("teams", &teams, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode roster %s: %w", path, err)
	}
	return New(teams)
}

// Load returns the roster from path, or the built-in roster when path is empty.
func Load(path string) (*Roster, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
