// Package weights holds the scoring tables: which answers feed each
// metaprogram, and how metaprograms combine into roles and competencies.
// The tables are data, versioned and validated independently of the code
// that consumes them.
package weights

import (
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var defaultTables []byte

// ErrInvalidTables marca cualquier tabla que no supera la validacion.
var ErrInvalidTables = errors.New("invalid scoring tables")

// Scale is the closed answer range of the questionnaire.
type Scale struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Item is one (answer index, weight) pair of a metaprogram.
// Reverse-keyed items are mirrored on the scale before weighting.
type Item struct {
	Index   int     `yaml:"index" json:"index"`
	Weight  float64 `yaml:"weight" json:"weight"`
	Reverse bool    `yaml:"reverse,omitempty" json:"reverse,omitempty"`
}

type Metaprogram struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Items []Item `yaml:"items" json:"items"`
}

// Contribution is the weight of one metaprogram inside a role or competency.
type Contribution struct {
	Metaprogram string  `yaml:"metaprogram" json:"metaprogram"`
	Weight      float64 `yaml:"weight" json:"weight"`
}

// Target is a role or a competency: a named weighted blend of metaprograms.
type Target struct {
	ID      string         `yaml:"id" json:"id"`
	Name    string         `yaml:"name" json:"name"`
	Weights []Contribution `yaml:"weights" json:"weights"`
}

// Tables agrupa las tres tablas de ponderacion y la forma del cuestionario.
type Tables struct {
	Version       string        `yaml:"version" json:"version"`
	QuestionCount int           `yaml:"question_count" json:"question_count"`
	Scale         Scale         `yaml:"scale" json:"scale"`
	Metaprograms  []Metaprogram `yaml:"metaprograms" json:"metaprograms"`
	Roles         []Target      `yaml:"roles" json:"roles"`
	Competencies  []Target      `yaml:"competencies" json:"competencies"`
}

// Default returns the tables shipped with the binary.
func Default() (*Tables, error) {
	return Parse(defaultTables)
}

// LoadFile reads and validates tables from a YAML file on disk.
func LoadFile(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tables %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("tables %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a YAML document, checks it against the tables schema and
// then validates the cross references between tables.
func Parse(data []byte) (*Tables, error) {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	if err := checkSchema(doc); err != nil {
		return nil, err
	}

	var t Tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate reports every semantic problem found in the tables.
func (t *Tables) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf(format, args...))
	}

	if t.QuestionCount <= 0 {
		add("question_count must be positive, got %d", t.QuestionCount)
	}
	if t.Scale.Min >= t.Scale.Max {
		add("scale min %d must be lower than max %d", t.Scale.Min, t.Scale.Max)
	}
	if len(t.Metaprograms) == 0 {
		add("at least one metaprogram is required")
	}

	known := make(map[string]struct{}, len(t.Metaprograms))
	for _, mp := range t.Metaprograms {
		if _, dup := known[mp.ID]; dup {
			add("duplicate metaprogram id %q", mp.ID)
		}
		known[mp.ID] = struct{}{}
		if len(mp.Items) == 0 {
			add("metaprogram %q has no items", mp.ID)
		}
		for _, it := range mp.Items {
			if it.Index < 0 || it.Index >= t.QuestionCount {
				add("metaprogram %q references answer index %d outside [0, %d)", mp.ID, it.Index, t.QuestionCount)
			}
			if !validWeight(it.Weight) {
				add("metaprogram %q has invalid weight %v at index %d", mp.ID, it.Weight, it.Index)
			}
		}
	}

	checkTargets := func(kind string, targets []Target) {
		if len(targets) == 0 {
			add("at least one %s is required", kind)
		}
		seen := make(map[string]struct{}, len(targets))
		for _, tg := range targets {
			if _, dup := seen[tg.ID]; dup {
				add("duplicate %s id %q", kind, tg.ID)
			}
			seen[tg.ID] = struct{}{}
			if len(tg.Weights) == 0 {
				add("%s %q has no weights", kind, tg.ID)
			}
			for _, c := range tg.Weights {
				if _, ok := known[c.Metaprogram]; !ok {
					add("%s %q references unknown metaprogram %q", kind, tg.ID, c.Metaprogram)
				}
				if !validWeight(c.Weight) {
					add("%s %q has invalid weight %v for %q", kind, tg.ID, c.Weight, c.Metaprogram)
				}
			}
		}
	}
	checkTargets("role", t.Roles)
	checkTargets("competency", t.Competencies)

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidTables, errors.Join(problems...))
}

// Fingerprint digests the full content of the tables. Two tables that share
// a version but differ in any index, weight or reference get different
// fingerprints.
func (t *Tables) Fingerprint() (string, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return "", fmt.Errorf("fingerprint tables: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Weights must be strictly positive so that the theoretical maximum used
// for normalisation is never zero.
func validWeight(w float64) bool {
	return !math.IsNaN(w) && !math.IsInf(w, 0) && w > 0
}
