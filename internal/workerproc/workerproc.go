package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"ats-backend/internal/analyses"
	"ats-backend/internal/matching"
	"ats-backend/internal/queue"
)

// Analyzer runs one scoring job. *analyses.Service satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, in analyses.Input) (analyses.Analysis, error)
}

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

// ErrMissingAnalysisID indicates a message missing the analysis id.
type ErrMissingAnalysisID struct {
	Meta      MessageMeta
	RequestID string
}

func (e ErrMissingAnalysisID) Error() string { return "missing analysis id" }

// ErrInvalidJob indicates a job that fails the same way on every attempt.
type ErrInvalidJob struct {
	AnalysisID string
	RequestID  string
	Err        error
}

func (e ErrInvalidJob) Error() string { return "invalid job: " + e.Err.Error() }

func (e ErrInvalidJob) Unwrap() error { return e.Err }

// ErrProcess indicates processing failed after successful parsing.
type ErrProcess struct {
	AnalysisID string
	RequestID  string
	Err        error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process analysis"
	}
	return "process analysis: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (queue.Message, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return queue.Message{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return queue.Message{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if strings.TrimSpace(msg.AnalysisID) == "" {
		return msg, meta, ErrMissingAnalysisID{Meta: meta, RequestID: msg.RequestID}
	}
	return msg, meta, nil
}

// Unrecoverable reports whether a message that failed with err should be
// dropped from the queue instead of retried.
func Unrecoverable(err error) bool {
	switch err.(type) {
	case ErrEmptyBody, ErrDecode, ErrMissingAnalysisID, ErrInvalidJob:
		return true
	default:
		return false
	}
}

// HandleMessage parses, validates, and scores a message payload.
func HandleMessage(ctx context.Context, analyzer Analyzer, body string) error {
	if analyzer == nil {
		return errors.New("analysis service not configured")
	}

	msg, _, err := ParseMessage(body)
	if err != nil {
		return err
	}

	ctxWithRequest := analyses.WithRequestID(ctx, msg.RequestID)
	_, err = analyzer.Analyze(ctxWithRequest, analyses.Input{
		ID:             msg.AnalysisID,
		ResumeText:     msg.ResumeText,
		JobDescription: msg.JobDescription,
		Options:        msg.Options,
		Source:         analyses.SourceQueue,
	})
	if err != nil {
		if isInvalidInput(err) {
			return ErrInvalidJob{AnalysisID: msg.AnalysisID, RequestID: msg.RequestID, Err: err}
		}
		return ErrProcess{AnalysisID: msg.AnalysisID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}

func isInvalidInput(err error) bool {
	return errors.Is(err, analyses.ErrMissingField) ||
		errors.Is(err, matching.ErrInvalidOptions) ||
		errors.Is(err, analyses.ErrAnalysisFailed)
}
