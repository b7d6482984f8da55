package normalize

import (
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/resume-tabulator/internal/types"
	"gopkg.in/yaml.v3"
)

// Category is one boolean export column and the keyword variants that set it
type Category struct {
	Column   string   `yaml:"column"`
	Keywords []string `yaml:"keywords"`
}

// FlagSpec is the ordered skill taxonomy. Order defines the flag column order.
type FlagSpec struct {
	Categories []Category `yaml:"categories"`
}

// DefaultFlagSpec returns the built-in taxonomy.
func DefaultFlagSpec() FlagSpec {
	return FlagSpec{Categories: []Category{
		{Column: "Python experience", Keywords: []string{"python"}},
		{Column: "C programming language experience", Keywords: []string{"c"}},
		{Column: "C++ programming experience", Keywords: []string{"c++"}},
		{Column: "Swift programming experience", Keywords: []string{"swift"}},
		{Column: "R programming experience", Keywords: []string{"r"}},
		{Column: "Neuroscience professional experience", Keywords: []string{"neuroscience"}},
		{Column: "Imaging data professional experience", Keywords: []string{"imaging data"}},
		{Column: "Bioinformatics professional experience", Keywords: []string{"bioinformatics"}},
	}}
}

// LoadFlagSpec reads a YAML taxonomy of the form
//
//	categories:
//	  - column: Python experience
//	    keywords: [python, python3]
func LoadFlagSpec(path string) (FlagSpec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return FlagSpec{}, &FlagSpecError{Path: path, Message: "failed to read file", Cause: err}
	}

	var spec FlagSpec
	if err := yaml.Unmarshal(content, &spec); err != nil {
		return FlagSpec{}, &FlagSpecError{Path: path, Message: "failed to parse YAML", Cause: err}
	}

	for i := range spec.Categories {
		spec.Categories[i].Keywords = cleanKeywords(spec.Categories[i].Keywords)
	}

	if err := spec.Validate(); err != nil {
		if fsErr, ok := err.(*FlagSpecError); ok {
			fsErr.Path = path
		}
		return FlagSpec{}, err
	}
	return spec, nil
}

// Validate checks that every category has a unique, non-empty column and at least one keyword.
func (s FlagSpec) Validate() error {
	if len(s.Categories) == 0 {
		return &FlagSpecError{Message: "no categories defined"}
	}

	seen := make(map[string]struct{}, len(s.Categories))
	for i, c := range s.Categories {
		column := strings.TrimSpace(c.Column)
		if column == "" {
			return &FlagSpecError{Message: fmt.Sprintf("category %d has an empty column", i)}
		}
		if _, dup := seen[column]; dup {
			return &FlagSpecError{Message: fmt.Sprintf("duplicate column %q", column)}
		}
		seen[column] = struct{}{}

		hasKeyword := false
		for _, k := range c.Keywords {
			if strings.TrimSpace(k) != "" {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			return &FlagSpecError{Message: fmt.Sprintf("category %q has no keywords", column)}
		}
	}
	return nil
}

// cleanKeywords trims and lower-cases keywords and drops blank ones.
func cleanKeywords(keywords []string) []string {
	cleaned := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			cleaned = append(cleaned, k)
		}
	}
	return cleaned
}

// Columns returns the flag column names in order.
func (s FlagSpec) Columns() []string {
	cols := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		cols = append(cols, c.Column)
	}
	return cols
}

// SkillSet lower-cases skill labels into a set for matching.
func SkillSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[strings.ToLower(l)] = struct{}{}
	}
	return set
}

// MatchSkills evaluates every category against the lower-cased skill set.
// A category is "y" when one of its keywords, lower-cased, is an exact member
// of the set. Keywords are not searched for inside longer labels:
// "python" does not match "python programming". Blank keywords never match.
func MatchSkills(skills map[string]struct{}, spec FlagSpec) []types.Flag {
	flags := make([]types.Flag, 0, len(spec.Categories))
	for _, c := range spec.Categories {
		matched := false
		for _, k := range cleanKeywords(c.Keywords) {
			if _, ok := skills[k]; ok {
				matched = true
				break
			}
		}
		flags = append(flags, types.Flag{Column: c.Column, Value: YesNo(matched)})
	}
	return flags
}
