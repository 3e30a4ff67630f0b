package queue

import (
	"encoding/json"

	"ats-backend/internal/matching"
)

// MessageVersion is the payload version written by EncodeMessage.
const MessageVersion = 1

// Message is a scoring job. AnalysisID is assigned by the producer so the
// caller can poll for the stored result.
type Message struct {
	AnalysisID     string           `json:"analysisId"`
	RequestID      string           `json:"requestId,omitempty"`
	ResumeText     string           `json:"resumeText"`
	JobDescription string           `json:"jobDescription"`
	Options        matching.Options `json:"options"`
	EnqueuedAt     string           `json:"enqueuedAt"`
	Version        int              `json:"version"`
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
