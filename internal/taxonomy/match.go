package taxonomy

import (
	"sort"
	"strings"

	"github.com/sha9506/HireRank/internal/types"
)

// Contains reports whether the skill occurs in the text as a whole token,
// checking the canonical spelling and all taxonomy synonyms. For skills
// outside the taxonomy an ad-hoc pattern is compiled with the same boundary
// rules, so unknown expected skills still match deterministically.
func (t *Table) Contains(text, skill string) bool {
	canonical, known := t.Canonical(skill)
	if known {
		return t.patterns[canonical].MatchString(text)
	}
	pattern, err := compileTermPattern([]string{skill})
	if err != nil {
		return false
	}
	return pattern.MatchString(text)
}

// Match checks each expected skill against the resume text and partitions
// the expected set into found and missing, assigning every expected skill a
// category. Pure and idempotent: identical inputs always yield identical
// output, and matching is independent of the order of expected skills.
func (t *Table) Match(text string, expected []string) types.TaxonomyResult {
	result := types.TaxonomyResult{
		OK:         true,
		Found:      make([]string, 0, len(expected)),
		Missing:    make([]string, 0),
		Categories: make(map[string]types.Category, len(expected)),
	}

	seen := make(map[string]bool, len(expected))
	total := 0
	for _, skill := range expected {
		canonical, _ := t.Canonical(skill)
		if canonical == "" || seen[canonical] {
			continue
		}
		seen[canonical] = true
		total++

		result.Categories[canonical] = t.Category(canonical)
		if t.Contains(text, canonical) {
			result.Found = append(result.Found, canonical)
		} else {
			result.Missing = append(result.Missing, canonical)
		}
	}

	if total > 0 {
		result.Ratio = float64(len(result.Found)) / float64(total)
	}
	return result
}

// ExtractSkills returns every taxonomy skill present in the text as a whole
// token, canonicalized and sorted alphabetically.
func (t *Table) ExtractSkills(text string) []string {
	found := make([]string, 0)
	for _, term := range t.terms {
		if t.patterns[term.Canonical].MatchString(text) {
			found = append(found, term.Canonical)
		}
	}
	sort.Strings(found)
	return found
}

// ExtractMentions returns the first occurrence span of each taxonomy skill
// present in the text, for provenance display.
func (t *Table) ExtractMentions(text string) []types.SkillMention {
	mentions := make([]types.SkillMention, 0)
	for _, term := range t.terms {
		loc := t.patterns[term.Canonical].FindStringIndex(text)
		if loc != nil {
			mentions = append(mentions, types.SkillMention{
				Skill: term.Canonical,
				Start: loc[0],
				End:   loc[1],
			})
		}
	}
	sort.Slice(mentions, func(i, j int) bool {
		if mentions[i].Start != mentions[j].Start {
			return mentions[i].Start < mentions[j].Start
		}
		return mentions[i].Skill < mentions[j].Skill
	})
	return mentions
}

// NormalizeSkill maps a skill name variant to its canonical taxonomy form,
// or trims and title-cases single unknown words.
func (t *Table) NormalizeSkill(name string) string {
	canonical, known := t.Canonical(name)
	if known || canonical == "" {
		return canonical
	}
	if !strings.Contains(canonical, " ") && canonical == strings.ToLower(canonical) {
		return strings.ToUpper(canonical[:1]) + canonical[1:]
	}
	return canonical
}
