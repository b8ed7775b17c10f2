// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sha9506/HireRank/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidateInfo outputs the fields extracted from the resume.
func (p *Printer) PrintCandidateInfo(info *types.CandidateInfo) {
	if info == nil {
		return
	}

	var sb strings.Builder
	if info.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:       %s\n", info.Name))
	}
	if info.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:      %s\n", info.Email))
	}
	if info.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:      %s\n", info.Phone))
	}
	if info.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Experience: %.1f years\n", info.ExperienceYears))
	}

	if len(info.Education) > 0 {
		sb.WriteString("Education:\n")
		for _, entry := range info.Education {
			if len(entry) > 50 {
				entry = entry[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", entry))
		}
	}

	if sb.Len() == 0 {
		sb.WriteString("No candidate details extracted\n")
	}

	p.printBox("CANDIDATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFitScore outputs the full scoring result: score, signal contributions
// and the per-category skill breakdown.
func (p *Printer) PrintFitScore(fit *types.FitScore, jobTitle string) {
	if fit == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:        %s\n", jobTitle))
	if fit.MatchedRole != "" && fit.MatchedRole != jobTitle {
		sb.WriteString(fmt.Sprintf("Matched as: %s\n", fit.MatchedRole))
	}
	sb.WriteString(fmt.Sprintf("Score:      %d/100\n", fit.Score))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Skill ratio: %.2f\n", fit.SkillRatio))
	if fit.SimilarityOK {
		sb.WriteString(fmt.Sprintf("Similarity:  %.2f\n", fit.Similarity))
	} else {
		sb.WriteString("Similarity:  unavailable\n")
	}
	sb.WriteString(fmt.Sprintf("Categories:  %s\n", fit.Provenance))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Found (%d):   %s\n",
		len(fit.SkillsFound), skillList(fit.SkillsFound)))
	sb.WriteString(fmt.Sprintf("Missing (%d): %s\n",
		len(fit.SkillsMissing), skillList(fit.SkillsMissing)))

	if fit.Rationale != "" {
		sb.WriteString("\n")
		sb.WriteString(fit.Rationale)
	}

	p.printBox("FIT SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintBreakdown outputs the per-category skill partition.
func (p *Printer) PrintBreakdown(breakdown map[string]types.CategorySkills) {
	if len(breakdown) == 0 {
		return
	}

	categories := make([]string, 0, len(breakdown))
	for category := range breakdown {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	var sb strings.Builder
	for i, category := range categories {
		skills := breakdown[category]
		sb.WriteString(fmt.Sprintf("%s\n", category))
		if len(skills.Found) > 0 {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", skillList(skills.Found)))
		}
		if len(skills.Missing) > 0 {
			sb.WriteString(fmt.Sprintf("  ✗ %s\n", skillList(skills.Missing)))
		}
		if i < len(categories)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("SKILL BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}

// skillList joins up to maxItemsToShow skills, eliding the rest.
func skillList(skills []string) string {
	if len(skills) == 0 {
		return "none"
	}
	shown := skills
	if len(shown) > maxItemsToShow {
		shown = shown[:maxItemsToShow]
	}
	joined := strings.Join(shown, ", ")
	if len(skills) > maxItemsToShow {
		joined += fmt.Sprintf(" (+%d more)", len(skills)-maxItemsToShow)
	}
	return joined
}
