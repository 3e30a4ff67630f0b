package analyses

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/extract"
	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
	"ats-backend/internal/shared/telemetry"
)

const (
	formResumeFile   = "resume"
	formJDFile       = "jobDescription"
	formResumeText   = "resumeText"
	formJDText       = "jobDescriptionText"
	formOptions      = "options"
	multipartMemory  = 8 << 20
	defaultMaxUpload = 10 << 20
)

// uploadAnalysis accepts a multipart form with resume and job description
// files and/or text fields. Extracted file text follows any field text.
func (h *Handler) uploadAnalysis(c *gin.Context) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(c, err)
			return
		}
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid multipart form", nil)
		return
	}
	form := c.Request.MultipartForm
	defer form.RemoveAll()

	in := Input{Source: SourceUpload}

	if raw := strings.TrimSpace(c.PostForm(formOptions)); raw != "" {
		if err := json.Unmarshal([]byte(raw), &in.Options); err != nil {
			respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidOptions, "options must be a JSON object", respond.Issue(formOptions, "invalid_json"))
			return
		}
	}

	resumeText, resumeAtt, err := readPart(c, form, formResumeFile, RoleResume)
	if err != nil {
		writeError(c, err)
		return
	}
	jdText, jdAtt, err := readPart(c, form, formJDFile, RoleJobDescription)
	if err != nil {
		writeError(c, err)
		return
	}

	in.ResumeText = joinText(c.PostForm(formResumeText), resumeText)
	in.JobDescription = joinText(c.PostForm(formJDText), jdText)
	if resumeAtt != nil {
		in.ResumeFileName = resumeAtt.FileName
		in.Attachments = append(in.Attachments, *resumeAtt)
	}
	if jdAtt != nil {
		in.JDFileName = jdAtt.FileName
		in.Attachments = append(in.Attachments, *jdAtt)
	}

	h.runAnalysis(c, in)
}

// readPart extracts the text of an optional file field.
func readPart(c *gin.Context, form *multipart.Form, field, role string) (string, *Attachment, error) {
	headers := form.File[field]
	if len(headers) == 0 {
		return "", nil, nil
	}
	header := headers[0]
	data, err := readFileHeader(header)
	if err != nil {
		return "", nil, err
	}
	contentType := header.Header.Get("Content-Type")
	text, err := extract.ExtractTextFromBytes(c.Request.Context(), data, contentType, header.Filename)
	if err != nil {
		metrics.IncExtractionFailed()
		telemetry.Warn("upload.extract_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"role":       role,
			"file_name":  header.Filename,
			"size_bytes": header.Size,
			"error":      sanitizeError(err),
		})
		return "", nil, err
	}
	return text, &Attachment{
		Role:        role,
		FileName:    header.Filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func readFileHeader(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}
	return data, nil
}

func joinText(fieldText, fileText string) string {
	fieldText = strings.TrimSpace(fieldText)
	fileText = strings.TrimSpace(fileText)
	switch {
	case fieldText == "":
		return fileText
	case fileText == "":
		return fieldText
	default:
		return fieldText + "\n\n" + fileText
	}
}
