package streams

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/agentstation/funcsync/pkg/constants"
	"github.com/agentstation/funcsync/pkg/errors"
)

// Layout maps stream identities to their input files and cleaned outputs.
//
// Patterns may contain the {flavour} and {level} placeholders. Outputs keep
// the input file name with Suffix appended. When OutputDir is set, the input's
// path relative to Dir is recreated underneath it; otherwise outputs are
// written next to their inputs.
type Layout struct {
	Dir            string `json:"dir" yaml:"dir"`
	OutputDir      string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	PrimaryPattern string `json:"primary_pattern" yaml:"primary_pattern"`
	AuxPattern     string `json:"aux_pattern" yaml:"aux_pattern"`
	Suffix         string `json:"suffix" yaml:"suffix"`
}

// DefaultLayout returns the layout of the compiler experiment logs rooted at dir.
func DefaultLayout(dir string) Layout {
	return Layout{
		Dir:            dir,
		PrimaryPattern: constants.DefaultPrimaryPattern,
		AuxPattern:     constants.DefaultAuxPattern,
		Suffix:         constants.DefaultCleanedSuffix,
	}
}

// Files holds the four paths belonging to one stream identity.
type Files struct {
	Primary        string `json:"primary" yaml:"primary"`
	Aux            string `json:"aux" yaml:"aux"`
	CleanedPrimary string `json:"cleaned_primary" yaml:"cleaned_primary"`
	CleanedAux     string `json:"cleaned_aux" yaml:"cleaned_aux"`
}

// Validate checks that the layout can name distinct files for every stream.
func (l Layout) Validate() error {
	if strings.TrimSpace(l.PrimaryPattern) == "" {
		return errors.NewValidationError("primary_pattern", l.PrimaryPattern, "cannot be empty")
	}
	if strings.TrimSpace(l.AuxPattern) == "" {
		return errors.NewValidationError("aux_pattern", l.AuxPattern, "cannot be empty")
	}
	if l.PrimaryPattern == l.AuxPattern {
		return errors.NewValidationError("aux_pattern", l.AuxPattern, "must differ from primary_pattern")
	}
	if l.Suffix == "" && (l.OutputDir == "" || filepath.Clean(l.OutputDir) == filepath.Clean(l.dir())) {
		return errors.NewValidationError("suffix", l.Suffix, "cannot be empty when outputs are written next to inputs")
	}
	for _, p := range []string{l.PrimaryPattern, l.AuxPattern} {
		if !strings.Contains(p, constants.FlavourPlaceholder) || !strings.Contains(p, constants.LevelPlaceholder) {
			return errors.NewValidationError("pattern", p, "must contain both {flavour} and {level}")
		}
	}
	return nil
}

// Files expands the layout for one stream identity.
func (l Layout) Files(id ID) Files {
	primary := filepath.Join(l.dir(), expand(l.PrimaryPattern, id))
	aux := filepath.Join(l.dir(), expand(l.AuxPattern, id))
	return Files{
		Primary:        primary,
		Aux:            aux,
		CleanedPrimary: l.CleanedPath(primary),
		CleanedAux:     l.CleanedPath(aux),
	}
}

// CleanedPath derives the output path of an input file. Inputs outside Dir
// land directly in OutputDir under their base name.
func (l Layout) CleanedPath(input string) string {
	if l.OutputDir == "" {
		return filepath.Join(filepath.Dir(input), filepath.Base(input)+l.Suffix)
	}
	rel, err := filepath.Rel(l.dir(), input)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(input)
	}
	return filepath.Join(l.OutputDir, rel+l.Suffix)
}

// CheckDistinct verifies that every output of ids gets its own file and that
// no output lands on an input.
func (l Layout) CheckDistinct(ids []ID) error {
	inputs := make(map[string]ID, 2*len(ids))
	for _, id := range ids {
		f := l.Files(id)
		inputs[filepath.Clean(f.Primary)] = id
		inputs[filepath.Clean(f.Aux)] = id
	}

	outputs := make(map[string]ID, 2*len(ids))
	for _, id := range ids {
		f := l.Files(id)
		for _, out := range []string{f.CleanedPrimary, f.CleanedAux} {
			out = filepath.Clean(out)
			if owner, ok := inputs[out]; ok {
				return errors.NewValidationError("output", out,
					fmt.Sprintf("output of stream %s overwrites an input of stream %s", id, owner))
			}
			if owner, ok := outputs[out]; ok {
				return errors.NewValidationError("output", out,
					fmt.Sprintf("streams %s and %s write the same output", owner, id))
			}
			outputs[out] = id
		}
	}
	return nil
}

func (l Layout) dir() string {
	if l.Dir == "" {
		return "."
	}
	return l.Dir
}

func expand(pattern string, id ID) string {
	return strings.NewReplacer(
		constants.FlavourPlaceholder, string(id.Flavour),
		constants.LevelPlaceholder, string(id.Level),
	).Replace(pattern)
}
