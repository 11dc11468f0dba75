// Package scenario loads battle setups from YAML.
package scenario

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mitchelldurbincs/GridTactics/internal/game/battle"
	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/mitchelldurbincs/GridTactics/internal/game/units"
)

//go:embed default.yaml
var defaultScenario []byte

var (
	ErrUnknownKit      = errors.New("unknown action kit")
	ErrKitAndActions   = errors.New("unit declares both kit and actions")
	ErrMissingUnitName = errors.New("unit has no name")
)

// KitCardinal is one step and one melee strike in each cardinal direction
const KitCardinal = "cardinal"

// File is the on-disk scenario format
type File struct {
	Name  string     `yaml:"name"`
	Map   MapSpec    `yaml:"map"`
	Units []UnitFile `yaml:"units"`
}

type MapSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// UnitFile is one roster entry. HP and AP start full.
type UnitFile struct {
	Name     string       `yaml:"name"`
	Faction  string       `yaml:"faction"`
	Asset    string       `yaml:"asset"`
	Frame    int          `yaml:"frame"`
	Level    int          `yaml:"level"`
	HP       int          `yaml:"hp"`
	AP       int          `yaml:"ap"`
	Attack   int          `yaml:"attack"`
	Position Position     `yaml:"position"`
	Kit      string       `yaml:"kit,omitempty"`
	Actions  []ActionFile `yaml:"actions,omitempty"`
}

type ActionFile struct {
	Kind string `yaml:"kind"`
	DX   int    `yaml:"dx"`
	DY   int    `yaml:"dy"`
}

// Scenario is a named, validated battle setup
type Scenario struct {
	Name  string
	Setup battle.Setup
}

// Default returns the embedded scenario
func Default() (*Scenario, error) {
	s, err := Parse(bytes.NewReader(defaultScenario))
	if err != nil {
		return nil, fmt.Errorf("embedded scenario: %w", err)
	}
	return s, nil
}

// Load reads a scenario file. An empty path loads the embedded default.
func Load(path string) (*Scenario, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scenario: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario
func Parse(r io.Reader) (*Scenario, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}

	setup, err := file.ToSetup()
	if err != nil {
		return nil, err
	}
	if err := setup.Validate(); err != nil {
		return nil, err
	}
	return &Scenario{Name: file.Name, Setup: setup}, nil
}

// ToSetup converts the file into a battle setup without validating it
func (f File) ToSetup() (battle.Setup, error) {
	setup := battle.Setup{
		Width:  f.Map.Width,
		Height: f.Map.Height,
		Units:  make([]battle.UnitSpec, 0, len(f.Units)),
	}
	for i, u := range f.Units {
		spec, err := u.toSpec()
		if err != nil {
			return battle.Setup{}, fmt.Errorf("unit %d: %w", i, err)
		}
		setup.Units = append(setup.Units, spec)
	}
	return setup, nil
}

func (u UnitFile) toSpec() (battle.UnitSpec, error) {
	if strings.TrimSpace(u.Name) == "" {
		return battle.UnitSpec{}, ErrMissingUnitName
	}
	faction, err := units.ParseFaction(u.Faction)
	if err != nil {
		return battle.UnitSpec{}, fmt.Errorf("%s: %w", u.Name, err)
	}
	actions, err := u.actions()
	if err != nil {
		return battle.UnitSpec{}, fmt.Errorf("%s: %w", u.Name, err)
	}

	return battle.UnitSpec{
		Faction: faction,
		Stats: units.StatBlock{
			Name:       u.Name,
			AssetKey:   u.Asset,
			AssetFrame: u.Frame,
			Level:      u.Level,
			MaxHP:      u.HP,
			CurrentHP:  u.HP,
			MaxAP:      u.AP,
			CurrentAP:  u.AP,
			Attack:     u.Attack,
		},
		Position: core.NewCoordinate(u.Position.X, u.Position.Y),
		Actions:  actions,
	}, nil
}

func (u UnitFile) actions() ([]units.Action, error) {
	if u.Kit != "" && len(u.Actions) > 0 {
		return nil, ErrKitAndActions
	}
	switch strings.ToLower(u.Kit) {
	case "":
	case KitCardinal:
		return units.CardinalActions(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKit, u.Kit)
	}

	actions := make([]units.Action, 0, len(u.Actions))
	for _, a := range u.Actions {
		kind, err := units.ParseActionKind(a.Kind)
		if err != nil {
			return nil, err
		}
		actions = append(actions, units.Action{Kind: kind, Offset: core.NewCoordinate(a.DX, a.DY)})
	}
	return actions, nil
}
