package skill

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

type Level string

const (
	LevelBeginner     Level = "BEGINNER"
	LevelIntermediate Level = "INTERMEDIATE"
	LevelAdvanced     Level = "ADVANCED"
	LevelExpert       Level = "EXPERT"
)

// Weight maps a level to its ordinal rank. Anything unrecognized ranks as a beginner.
func (l Level) Weight() int {
	switch l {
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelAdvanced:
		return 3
	case LevelExpert:
		return 4
	default:
		return 1
	}
}

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced, LevelExpert:
		return true
	default:
		return false
	}
}

// ParseLevel maps a level coming from outside the service onto the ladder. Only the exact
// upper-case names are recognized; anything else, "expert" or " EXPERT" included, is BEGINNER
// so it weighs the same as it would unparsed.
func ParseLevel(s string) Level {
	l := Level(s)
	if !l.Valid() {
		return LevelBeginner
	}
	return l
}

type Skill struct {
	Name  string `json:"name" yaml:"name"`
	Level Level  `json:"level" yaml:"level"`
}

// Key is the identity used for matching: two skills are the same skill iff their keys are equal.
func (s Skill) Key() string {
	return strings.ToLower(s.Name)
}

func (s Skill) HasName() bool {
	return s.Name != ""
}

// NormalizeSkill turns the loosely typed shapes clients send (a bare name, or an object
// with name/level) into a Skill. A name that is not a string becomes empty, which the
// scorer treats as "no match" instead of failing.
func NormalizeSkill(raw any) Skill {
	switch v := raw.(type) {
	case Skill:
		return v
	case *Skill:
		if v == nil {
			return Skill{Level: LevelBeginner}
		}
		return *v
	case string:
		return Skill{Name: v, Level: LevelBeginner}
	case map[string]any:
		out := Skill{Level: LevelBeginner}
		if name, ok := v["name"].(string); ok {
			out.Name = name
		}
		if lvl, ok := v["level"].(string); ok {
			out.Level = ParseLevel(lvl)
		}
		return out
	default:
		return Skill{Level: LevelBeginner}
	}
}

// NormalizeSkills applies NormalizeSkill to every element. A nil input stays nil so
// callers can still tell an absent list from an empty one.
func NormalizeSkills(raw []any) []Skill {
	if raw == nil {
		return nil
	}
	out := make([]Skill, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeSkill(r))
	}
	return out
}

func (s *Skill) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*s = NormalizeSkill(raw)
	return nil
}

func (s *Skill) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	*s = NormalizeSkill(raw)
	return nil
}
