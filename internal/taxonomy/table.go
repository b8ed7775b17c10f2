// Package taxonomy provides the fixed skill taxonomy and deterministic
// skill matching against free text.
package taxonomy

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sha9506/HireRank/internal/types"
)

// SkillTerm is one entry in the skill taxonomy: a canonical name, the
// synonym spellings that normalize to it, and its category bucket.
type SkillTerm struct {
	Canonical string
	Synonyms  []string
	Category  types.Category
}

// Table is an immutable, compiled skill taxonomy. It is built once at
// startup and is safe for unsynchronized concurrent reads.
type Table struct {
	terms    []SkillTerm
	byName   map[string]int            // lowercased canonical or synonym -> index into terms
	patterns map[string]*regexp.Regexp // canonical -> compiled occurrence pattern
	version  string
}

// NewTable compiles a taxonomy table from skill terms.
// Returns an error if a canonical name is empty or duplicated.
func NewTable(version string, terms []SkillTerm) (*Table, error) {
	t := &Table{
		terms:    terms,
		byName:   make(map[string]int, len(terms)*2),
		patterns: make(map[string]*regexp.Regexp, len(terms)),
		version:  version,
	}

	for i, term := range terms {
		if term.Canonical == "" {
			return nil, fmt.Errorf("taxonomy entry %d has empty canonical name", i)
		}
		key := strings.ToLower(term.Canonical)
		if _, exists := t.byName[key]; exists {
			return nil, fmt.Errorf("duplicate taxonomy entry: %s", term.Canonical)
		}
		t.byName[key] = i
		for _, syn := range term.Synonyms {
			t.byName[strings.ToLower(syn)] = i
		}

		names := append([]string{term.Canonical}, term.Synonyms...)
		pattern, err := compileTermPattern(names)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %s: %w", term.Canonical, err)
		}
		t.patterns[term.Canonical] = pattern
	}

	return t, nil
}

// Version returns the taxonomy version string.
func (t *Table) Version() string {
	return t.version
}

// Terms returns the number of entries in the table.
func (t *Table) Terms() int {
	return len(t.terms)
}

// Canonical resolves a skill name or synonym to its canonical form.
// Unknown names are returned trimmed but otherwise unchanged.
func (t *Table) Canonical(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	if idx, ok := t.byName[strings.ToLower(trimmed)]; ok {
		return t.terms[idx].Canonical, true
	}
	return trimmed, false
}

// Category returns the category bucket for a skill name or synonym.
// Skills outside the taxonomy fall into the reserved "other" bucket.
func (t *Table) Category(name string) types.Category {
	if idx, ok := t.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t.terms[idx].Category
	}
	return types.CategoryOther
}

// compileTermPattern builds a case-insensitive whole-token pattern matching
// any of the given names. Token boundaries are required on both sides of the
// match so that e.g. "Java" never matches inside "JavaScript"; naive
// substring search is disallowed. Terms that begin or end with a non-word
// rune (C++, C#) omit \b on that side, since \b is undefined next to
// punctuation.
func compileTermPattern(names []string) (*regexp.Regexp, error) {
	alts := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		quoted := regexp.QuoteMeta(name)
		lb, rb := "", ""
		if isWordRune(rune(name[0])) {
			lb = `\b`
		}
		if isWordRune(rune(name[len(name)-1])) {
			rb = `\b`
		}
		alts = append(alts, lb+quoted+rb)
	}
	if len(alts) == 0 {
		return nil, fmt.Errorf("no names to compile")
	}
	return regexp.Compile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}

func isWordRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
}
