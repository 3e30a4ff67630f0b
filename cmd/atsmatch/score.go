package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ats-backend/internal/analyses"
	"ats-backend/internal/extract"
	"ats-backend/internal/matching"
	"ats-backend/internal/report"
)

type scoreFlags struct {
	resumePath string
	jdPath     string
	outPath    string
	asJSON     bool
	opts       matching.Options
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "atsmatch",
		Short:         "Deterministic resume and job description keyword matcher",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newScoreCmd())
	return root
}

func newScoreCmd() *cobra.Command {
	var f scoreFlags
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a resume against a job description",
		Long: `Score a resume against a job description and print the match summary.

Both inputs may be PDF or plain text files.

Example:
  atsmatch score --resume resume.pdf --jd job.txt
  atsmatch score --resume resume.txt --jd job.txt --top-k 20 --json
  atsmatch score --resume resume.pdf --jd job.txt --out ats-real-report.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), cmd.OutOrStdout(), f, time.Now())
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&f.resumePath, "resume", "", "Resume file (PDF or text)")
	flags.StringVar(&f.jdPath, "jd", "", "Job description file (PDF or text)")
	flags.StringVar(&f.outPath, "out", "", "Write the JSON report to this path")
	flags.BoolVar(&f.asJSON, "json", false, "Print the full result as JSON")
	flags.IntVar(&f.opts.TopKKeywords, "top-k", matching.DefaultTopKKeywords, "Number of job description keywords to rank")
	flags.Float64Var(&f.opts.PhraseBoostWeight, "phrase-boost", matching.DefaultPhraseBoostWeight, "Weight applied to job description bigrams")
	flags.Float64Var(&f.opts.ResumeBigramBoost, "resume-bigram-boost", 0, "Weight applied to resume bigrams (0 follows --phrase-boost)")
	flags.Float64Var(&f.opts.CoverageWeight, "coverage-weight", matching.DefaultCoverageWeight, "Weight of keyword coverage in the score")
	flags.Float64Var(&f.opts.SimilarityWeight, "similarity-weight", matching.DefaultSimilarityWeight, "Weight of cosine similarity in the score")
	_ = cmd.MarkFlagRequired("resume")
	_ = cmd.MarkFlagRequired("jd")
	return cmd
}

func runScore(ctx context.Context, out io.Writer, f scoreFlags, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resumeText, err := extract.ExtractFile(ctx, f.resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	jdText, err := extract.ExtractFile(ctx, f.jdPath)
	if err != nil {
		return fmt.Errorf("read job description: %w", err)
	}
	if err := analyses.ValidateText(resumeText, jdText); err != nil {
		return fmt.Errorf("%w: no text found in input file", err)
	}

	result, err := matching.Analyze(resumeText, jdText, f.opts)
	if err != nil {
		return err
	}
	rep := report.New(result, now)

	if f.outPath != "" {
		data, err := report.Marshal(rep)
		if err != nil {
			return err
		}
		if dir := filepath.Dir(f.outPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create report dir: %w", err)
			}
		}
		if err := os.WriteFile(f.outPath, data, 0o644); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	if f.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return printSummary(out, result, f.outPath)
}

func printSummary(out io.Writer, result matching.Result, reportPath string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Score: %d/100\n", result.Score)
	fmt.Fprintf(&b, "Cosine similarity: %.4f\n", result.Details.CosineSimilarity)
	fmt.Fprintf(&b, "Keyword coverage: %.4f\n", result.Details.KeywordCoverage)
	fmt.Fprintf(&b, "Matched (%d): %s\n", len(result.MatchedKeywords), strings.Join(result.MatchedKeywords, ", "))
	fmt.Fprintf(&b, "Missing (%d): %s\n", len(result.MissingKeywords), strings.Join(result.MissingKeywords, ", "))
	b.WriteString("Suggestions:\n")
	for _, s := range result.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", s)
	}
	if reportPath != "" {
		fmt.Fprintf(&b, "Report written to %s\n", reportPath)
	}
	_, err := io.WriteString(out, b.String())
	return err
}
