package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sha9506/HireRank/internal/extraction"
	"github.com/sha9506/HireRank/internal/jobdesc"
	"github.com/sha9506/HireRank/internal/observability"
	"github.com/sha9506/HireRank/internal/types"
)

var (
	scoreConfigPath string
	scoreResume     string
	scoreJobTitle   string
	scoreJobDesc    string
	scoreJobURL     string
	scoreSkills     []string
	scoreJSON       bool
	scoreVerbose    bool
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one resume against a job",
	Long: `Rank a resume text file against a job title, producing a 0-100 fit
score with found/missing skills and a rationale. The job description can be
given inline, as a file, or fetched from a posting URL.`,
	RunE: runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to config.json file")
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume text file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobTitle, "job-title", "j", "", "Job title to score against (required)")
	scoreCmd.Flags().StringVar(&scoreJobDesc, "job-desc", "", "Job description text, or path to a text file")
	scoreCmd.Flags().StringVar(&scoreJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job-desc)")
	scoreCmd.Flags().StringSliceVar(&scoreSkills, "skills", nil, "Expected skills (comma separated; defaults to skills derived from the title)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the raw FitScore as JSON")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print extracted candidate details and the skill breakdown")

	_ = scoreCmd.MarkFlagRequired("resume")
	_ = scoreCmd.MarkFlagRequired("job-title")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if scoreJobDesc != "" && scoreJobURL != "" {
		return fmt.Errorf("--job-desc and --job-url are mutually exclusive")
	}

	cfg, err := loadConfig(scoreConfigPath)
	if err != nil {
		return err
	}

	resumeBytes, err := os.ReadFile(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	resumeText := string(resumeBytes)

	description, err := resolveJobDescription(ctx)
	if err != nil {
		return err
	}

	eng, client, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
	}

	profile := extraction.ExtractProfile(eng.Table(), resumeText)
	fit, err := eng.Score(ctx, profile, types.JobRequirement{
		Title:          scoreJobTitle,
		Description:    description,
		ExpectedSkills: scoreSkills,
	})
	if err != nil {
		return err
	}

	if scoreJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(fit)
	}

	printer := observability.NewPrinter(os.Stdout)
	if scoreVerbose {
		printer.PrintCandidateInfo(&profile.Info)
	}
	printer.PrintFitScore(fit, scoreJobTitle)
	if scoreVerbose {
		printer.PrintBreakdown(fit.Breakdown)
	}
	return nil
}

// resolveJobDescription turns --job-desc (inline text or a file path) or
// --job-url into job description text.
func resolveJobDescription(ctx context.Context) (string, error) {
	if scoreJobURL != "" {
		fetcher := jobdesc.NewFetcher(nil)
		description, err := fetcher.Fetch(ctx, scoreJobURL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return description, nil
	}

	if scoreJobDesc == "" {
		return "", nil
	}
	// A single token that names an existing file is read as one; anything
	// else is inline text.
	if !strings.ContainsAny(scoreJobDesc, "\n ") {
		if data, err := os.ReadFile(scoreJobDesc); err == nil {
			return string(data), nil
		}
	}
	return scoreJobDesc, nil
}
