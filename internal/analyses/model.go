package analyses

import (
	"time"

	"ats-backend/internal/matching"
)

const (
	SourceText   = "text"
	SourceUpload = "upload"
	SourceQueue  = "queue"
)

const (
	RoleResume         = "resume"
	RoleJobDescription = "jobDescription"
)

// Analysis is one stored scoring run.
type Analysis struct {
	ID               string           `json:"analysisId"`
	InputFingerprint string           `json:"inputFingerprint"`
	Source           string           `json:"source"`
	ResumeFileName   string           `json:"resumeFileName,omitempty"`
	JDFileName       string           `json:"jobDescriptionFileName,omitempty"`
	Options          matching.Options `json:"options"`
	Result           matching.Result  `json:"result"`
	ReportKey        string           `json:"-"`
	CreatedAt        time.Time        `json:"createdAt"`
}

// Input is what a caller submits for scoring.
type Input struct {
	// ID is assigned by the caller for queued jobs; empty means generate one.
	ID             string
	ResumeText     string
	JobDescription string
	Options        matching.Options
	Source         string
	ResumeFileName string
	JDFileName     string
	// Attachments are the uploaded originals, archived next to the report.
	Attachments []Attachment
}

// Attachment is an uploaded source file.
type Attachment struct {
	Role        string
	FileName    string
	ContentType string
	Data        []byte
}
