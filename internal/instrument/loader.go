package instrument

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the only catalog file major version this build reads.
const SupportedMajor = "v1"

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	schemaCompiled *jsonschema.Schema
	schemaErr      error
)

// fileInstrument is the on-disk shape of an instrument definition.
type fileInstrument struct {
	Version     string `yaml:"version"`
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Duration    string `yaml:"duration"`
	Stem        string `yaml:"stem"`
	Scale       []struct {
		Value       int    `yaml:"value"`
		Label       string `yaml:"label"`
		Description string `yaml:"description"`
	} `yaml:"scale"`
	Questions []struct {
		ID       string `yaml:"id"`
		Prompt   string `yaml:"prompt"`
		HighRisk bool   `yaml:"high_risk"`
	} `yaml:"questions"`
	Bands []struct {
		Severity string `yaml:"severity"`
		Label    string `yaml:"label"`
		Max      int    `yaml:"max"`
		Advisory         string `yaml:"advisory"`
		SeekProfessional bool   `yaml:"seek_professional"`
		Recommendations  struct {
			Immediate []string `yaml:"immediate"`
			FollowUp  []string `yaml:"follow_up"`
		} `yaml:"recommendations"`
	} `yaml:"bands"`
}

// Parse decodes a single instrument definition. YAML and JSON are both
// accepted. The document is checked against the catalog schema and the
// declared version before it is converted; structural checks across
// questions and bands are left to Validate.
func Parse(data []byte) (*Instrument, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode instrument: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var fi fileInstrument
	if err := yaml.Unmarshal(data, &fi); err != nil {
		return nil, fmt.Errorf("decode instrument: %w", err)
	}
	if !semver.IsValid(fi.Version) {
		return nil, fmt.Errorf("instrument %q: invalid version %q", fi.ID, fi.Version)
	}
	if semver.Major(fi.Version) != SupportedMajor {
		return nil, fmt.Errorf("instrument %q: unsupported version %s (want %s.x)", fi.ID, fi.Version, SupportedMajor)
	}

	return fi.toInstrument(), nil
}

func (fi *fileInstrument) toInstrument() *Instrument {
	in := &Instrument{
		ID:          ID(fi.ID),
		Version:     fi.Version,
		Name:        fi.Name,
		Title:       fi.Title,
		Description: fi.Description,
		Duration:    fi.Duration,
		Stem:        fi.Stem,
	}
	for _, o := range fi.Scale {
		in.Scale = append(in.Scale, ScaleOption{Value: o.Value, Label: o.Label, Description: o.Description})
	}
	for i, q := range fi.Questions {
		in.Questions = append(in.Questions, Question{
			ID:       q.ID,
			Position: i + 1,
			Prompt:   q.Prompt,
			HighRisk: q.HighRisk,
		})
	}
	lower := 0
	for i, b := range fi.Bands {
		in.Bands = append(in.Bands, Band{
			Severity: Severity(b.Severity),
			Label:    b.Label,
			Rank:     i,
			Min:      lower,
			Max:      b.Max,
			Advisory: b.Advisory,

			SeekProfessional: b.SeekProfessional,
			Recommendations:  Recommendations{
				Immediate: b.Recommendations.Immediate,
				FollowUp:  b.Recommendations.FollowUp,
			},
		})
		lower = b.Max + 1
	}
	return in
}

// LoadFile reads and validates one instrument file.
func LoadFile(path string) (*Instrument, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("load %s: unsupported file type", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	in, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if err := Validate(in); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return in, nil
}

// LoadDir reads every instrument file in dir, sorted by file name.
// Files with other extensions are ignored.
func LoadDir(dir string) ([]*Instrument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read catalog dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]*Instrument, 0, len(names))
	for _, name := range names {
		in, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, nil
}

// validateSchema checks a decoded document against the catalog schema.
func validateSchema(doc any) error {
	compiled, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	// The schema library wants plain JSON values, so round-trip the YAML
	// tree through encoding/json.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("instrument is not JSON-compatible: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("instrument is not JSON-compatible: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://instrument.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		schemaCompiled, schemaErr = c.Compile(url)
	})
	return schemaCompiled, schemaErr
}
