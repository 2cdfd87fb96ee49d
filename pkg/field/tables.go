package field

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

//go:embed tables.toml
var defaultTables []byte

// TeamEntry is one franchise in the league roster.
type TeamEntry struct {
	Full       string `toml:"full"`
	Short      string `toml:"short"`
	Conference string `toml:"conference"`
}

// Tables bundles the correction maps and the league roster. The embedded
// defaults can be overridden from a TOML file for other leagues or locales.
type Tables struct {
	NameCorrections map[string]string `toml:"name_corrections"`
	TeamCorrections map[string]string `toml:"team_corrections"`
	Teams           []TeamEntry       `toml:"teams"`
}

// DefaultTables decodes the embedded correction tables.
func DefaultTables() *Tables {
	t, err := parseTables(defaultTables)
	if err != nil {
		panic(fmt.Sprintf("field: embedded tables are invalid: %v", err))
	}
	return t
}

// LoadTables reads a tables file from disk.
func LoadTables(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %s: %w", path, err)
	}
	t, err := parseTables(raw)
	if err != nil {
		return nil, fmt.Errorf("parse tables %s: %w", path, err)
	}
	return t, nil
}

func parseTables(raw []byte) (*Tables, error) {
	var t Tables
	if err := toml.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	if len(t.Teams) == 0 {
		return nil, fmt.Errorf("no teams defined")
	}
	return &t, nil
}
