// Package extraction builds a structured resume profile from raw resume
// text: detected skills with their mention spans, plus lightweight contact
// and experience heuristics. All extraction is regex and line based; no
// external capability is involved.
package extraction

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sha9506/HireRank/internal/taxonomy"
	"github.com/sha9506/HireRank/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.]?\d{3,4}[-.]?\d{3,4}[-.]?\d{4}`),
	}

	experiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`experience\s+(?:of\s+)?(\d+)\+?\s*years?`),
		regexp.MustCompile(`(\d+)\s*-\s*(\d+)\s*years?`),
	}

	calendarYearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
)

// educationKeywords flag lines that likely describe a degree.
var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "mba", "b.tech",
	"m.tech", "b.sc", "m.sc", "diploma", "degree",
}

// maxEducationLines caps how many degree lines are kept.
const maxEducationLines = 3

// ExtractProfile builds a ResumeProfile from raw text using the given
// taxonomy table for skill detection.
func ExtractProfile(table *taxonomy.Table, rawText string) types.ResumeProfile {
	return types.ResumeProfile{
		RawText:  rawText,
		Skills:   table.ExtractSkills(rawText),
		Mentions: table.ExtractMentions(rawText),
		Info:     ExtractCandidateInfo(rawText),
	}
}

// ExtractCandidateInfo pulls contact and experience details out of resume
// text. Fields that cannot be determined are left zero-valued.
func ExtractCandidateInfo(text string) types.CandidateInfo {
	return types.CandidateInfo{
		Name:            extractName(text),
		Email:           emailPattern.FindString(text),
		Phone:           extractPhone(text),
		Education:       extractEducation(text),
		ExperienceYears: estimateExperienceYears(text),
	}
}

func extractPhone(text string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(text); match != "" {
			return match
		}
	}
	return ""
}

// extractName assumes the name is near the top: a short line of two to
// four words, each starting with a capital letter.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) <= 2 || len(line) >= 50 {
			continue
		}
		words := strings.Fields(line)
		if len(words) < 2 || len(words) > 4 {
			continue
		}
		allCapitalized := true
		for _, word := range words {
			r := []rune(word)
			if r[0] < 'A' || r[0] > 'Z' {
				allCapitalized = false
				break
			}
		}
		if allCapitalized {
			return line
		}
	}
	return ""
}

func extractEducation(text string) []string {
	lines := strings.Split(text, "\n")
	var found []string
	seen := make(map[string]struct{})

	for _, keyword := range educationKeywords {
		for _, line := range lines {
			trimmed := strings.TrimSpace(line)
			if len(trimmed) <= 5 {
				continue
			}
			if !strings.Contains(strings.ToLower(trimmed), keyword) {
				continue
			}
			if _, dup := seen[trimmed]; !dup {
				seen[trimmed] = struct{}{}
				found = append(found, trimmed)
			}
			break
		}
		if len(found) >= maxEducationLines {
			break
		}
	}
	return found
}

// estimateExperienceYears looks for explicit "N years experience" phrasing
// first, then falls back to the span between the earliest and latest
// calendar years mentioned. Returns 0 when nothing is found.
func estimateExperienceYears(text string) float64 {
	lower := strings.ToLower(text)

	for _, pattern := range experiencePatterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		first, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		// Range pattern: use the midpoint of "x-y years".
		if len(match) > 2 && match[2] != "" {
			if second, err := strconv.ParseFloat(match[2], 64); err == nil {
				return (first + second) / 2
			}
		}
		return first
	}

	years := calendarYearPattern.FindAllString(text, -1)
	if len(years) >= 2 {
		min, max := years[0], years[0]
		for _, y := range years[1:] {
			if y < min {
				min = y
			}
			if y > max {
				max = y
			}
		}
		lo, _ := strconv.Atoi(min)
		hi, _ := strconv.Atoi(max)
		if span := hi - lo; span > 0 && span < 50 {
			return float64(span)
		}
	}

	return 0
}
