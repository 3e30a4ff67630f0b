package analyses

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"ats-backend/internal/matching"
	"ats-backend/internal/queue"
	"ats-backend/internal/report"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/storage/object"
	"ats-backend/internal/shared/telemetry"
	"ats-backend/internal/shared/util"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 50
	reportsPrefix    = "reports"
)

// Service runs analyses and keeps their records and reports.
type Service struct {
	Repo Repo
	// Store receives rendered reports and uploaded originals. Nil disables archiving.
	Store    object.ObjectStore
	Scorer   matching.Scorer
	Defaults matching.Options
	// Queue receives asynchronous scoring jobs. Nil disables Enqueue.
	Queue queue.Client
	Now   func() time.Time
}

// Analyze scores in, stores the record and archives the report. When in.ID
// names an analysis that is already stored, that record is returned as is.
func (s *Service) Analyze(ctx context.Context, in Input) (Analysis, error) {
	opts, err := s.validate(in)
	if err != nil {
		return Analysis{}, err
	}
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}

	analysisID := uuid.NewString()
	if in.ID != "" {
		if _, err := uuid.Parse(in.ID); err != nil {
			return Analysis{}, &FieldError{Field: "analysisId"}
		}
		analysisID = in.ID
		existing, err := s.Repo.GetByID(ctx, analysisID)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Analysis{}, fmt.Errorf("%w: get analysis: %v", ErrStorage, err)
		}
	}

	source := in.Source
	if source == "" {
		source = SourceText
	}
	startedAt := s.now()
	metrics.IncAnalysisStarted()

	result, err := s.score(in.ResumeText, in.JobDescription, opts)
	completedAt := s.now()
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.status", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysisID,
			"status":      "failed",
			"source":      source,
			"error":       sanitizeError(err),
			"duration_ms": durationMs(startedAt, completedAt),
		})
		return Analysis{}, fmt.Errorf("%w: %s", ErrAnalysisFailed, sanitizeError(err))
	}

	analysis := Analysis{
		ID:               analysisID,
		InputFingerprint: util.Fingerprint(in.ResumeText, in.JobDescription),
		Source:           source,
		ResumeFileName:   in.ResumeFileName,
		JDFileName:       in.JDFileName,
		Options:          opts,
		Result:           result,
		CreatedAt:        completedAt,
	}

	analysis.ReportKey = s.archiveReport(ctx, analysis)
	s.archiveAttachments(ctx, analysisID, in.Attachments)

	if err := s.Repo.Create(ctx, analysis); err != nil {
		metrics.IncAnalysisFailed()
		return Analysis{}, fmt.Errorf("%w: create analysis: %v", ErrStorage, err)
	}

	metrics.IncAnalysisCompleted()
	metrics.ObserveAnalysisDurationMs(durationMs(startedAt, completedAt))
	metrics.ObserveScore(result.Score)
	telemetry.Info("analysis.status", map[string]any{
		"request_id":       requestIDFromContext(ctx),
		"analysis_id":      analysisID,
		"status":           "completed",
		"source":           source,
		"score":            result.Score,
		"matched_keywords": len(result.MatchedKeywords),
		"missing_keywords": len(result.MissingKeywords),
		"duration_ms":      durationMs(startedAt, completedAt),
	})
	return analysis, nil
}

// Enqueue validates in and sends it to the queue for a worker to score. The
// returned ID becomes readable through Get once the job is processed.
func (s *Service) Enqueue(ctx context.Context, in Input) (string, error) {
	if s.Queue == nil {
		return "", ErrQueueDisabled
	}
	opts, err := s.validate(in)
	if err != nil {
		return "", err
	}

	analysisID := uuid.NewString()
	msg := queue.Message{
		AnalysisID:     analysisID,
		RequestID:      requestIDFromContext(ctx),
		ResumeText:     in.ResumeText,
		JobDescription: in.JobDescription,
		Options:        opts,
		EnqueuedAt:     s.now().Format(time.RFC3339),
		Version:        queue.MessageVersion,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		telemetry.Error("analysis.enqueue_failed", map[string]any{
			"request_id":  msg.RequestID,
			"analysis_id": analysisID,
			"error":       sanitizeError(err),
		})
		return "", fmt.Errorf("%w: enqueue: %v", ErrStorage, err)
	}
	metrics.IncAnalysisJobsEnqueued()
	telemetry.Info("analysis.status", map[string]any{
		"request_id":  msg.RequestID,
		"analysis_id": analysisID,
		"status":      "queued",
	})
	return analysisID, nil
}

// Get returns a stored analysis.
func (s *Service) Get(ctx context.Context, analysisID string) (Analysis, error) {
	if strings.TrimSpace(analysisID) == "" {
		return Analysis{}, &FieldError{Field: "analysisId"}
	}
	if _, err := uuid.Parse(analysisID); err != nil {
		return Analysis{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, analysisID)
}

// List returns stored analyses newest first. limit is clamped to [1, MaxListLimit].
func (s *Service) List(ctx context.Context, limit, offset int) ([]Analysis, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.Repo.List(ctx, limit, offset)
}

// OpenReport returns the report file for an analysis. When the archived copy is
// missing the report is rendered again from the stored result.
func (s *Service) OpenReport(ctx context.Context, analysisID string) ([]byte, error) {
	analysis, err := s.Get(ctx, analysisID)
	if err != nil {
		return nil, err
	}

	if s.Store != nil && analysis.ReportKey != "" {
		data, err := readObject(ctx, s.Store, analysis.ReportKey)
		if err == nil {
			metrics.IncReportDownloads()
			return data, nil
		}
		if !errors.Is(err, object.ErrNotFound) {
			return nil, fmt.Errorf("%w: open report: %v", ErrStorage, err)
		}
		telemetry.Warn("report.missing", map[string]any{
			"analysis_id": analysisID,
			"report_key":  analysis.ReportKey,
		})
	}

	data, err := report.Marshal(report.New(analysis.Result, analysis.CreatedAt))
	if err != nil {
		return nil, err
	}
	metrics.IncReportDownloads()
	return data, nil
}

// ValidateText rejects an empty or whitespace-only resume or job description
// with a *FieldError before anything is scored.
func ValidateText(resumeText, jobDescription string) error {
	if strings.TrimSpace(resumeText) == "" {
		return &FieldError{Field: "resumeText"}
	}
	if strings.TrimSpace(jobDescription) == "" {
		return &FieldError{Field: "jobDescription"}
	}
	return nil
}

func (s *Service) validate(in Input) (matching.Options, error) {
	if err := ValidateText(in.ResumeText, in.JobDescription); err != nil {
		return matching.Options{}, err
	}
	opts := in.Options.WithDefaults(s.defaults())
	if err := opts.Validate(); err != nil {
		return matching.Options{}, err
	}
	return opts, nil
}

func (s *Service) score(resumeText, jobDescription string, opts matching.Options) (result matching.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("scorer panic: %v", rec)
		}
	}()
	scorer := s.Scorer
	if scorer == nil {
		scorer = matching.TFIDFScorer{}
	}
	return scorer.Score(resumeText, jobDescription, opts)
}

func (s *Service) archiveReport(ctx context.Context, analysis Analysis) string {
	if s.Store == nil {
		return ""
	}
	data, err := report.Marshal(report.New(analysis.Result, analysis.CreatedAt))
	if err != nil {
		telemetry.Error("report.render_failed", map[string]any{"analysis_id": analysis.ID, "error": err.Error()})
		return ""
	}
	key := ReportKey(analysis.ID)
	if _, err := s.Store.Put(ctx, key, report.ContentType, bytes.NewReader(data)); err != nil {
		telemetry.Warn("report.archive_failed", map[string]any{
			"request_id":  requestIDFromContext(ctx),
			"analysis_id": analysis.ID,
			"error":       sanitizeError(err),
		})
		return ""
	}
	return key
}

func (s *Service) archiveAttachments(ctx context.Context, analysisID string, attachments []Attachment) {
	if s.Store == nil {
		return
	}
	for _, att := range attachments {
		name, err := util.SanitizeFileName(att.FileName)
		if err != nil {
			name = "upload"
		}
		key := path.Join(reportsPrefix, analysisID, "sources", att.Role+"-"+name)
		contentType := att.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		if _, err := s.Store.Put(ctx, key, contentType, bytes.NewReader(att.Data)); err != nil {
			telemetry.Warn("upload.archive_failed", map[string]any{
				"analysis_id": analysisID,
				"role":        att.Role,
				"error":       sanitizeError(err),
			})
		}
	}
}

// ReportKey is the object store key of an analysis report.
func ReportKey(analysisID string) string {
	return path.Join(reportsPrefix, analysisID, report.FileName)
}

func (s *Service) defaults() matching.Options {
	return s.Defaults.WithDefaults(matching.DefaultOptions())
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func readObject(ctx context.Context, store object.ObjectStore, key string) ([]byte, error) {
	body, err := store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return io.ReadAll(body)
}

func durationMs(startedAt, completedAt time.Time) float64 {
	return float64(completedAt.Sub(startedAt).Microseconds()) / 1000.0
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
