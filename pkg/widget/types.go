package widget

import (
	"encoding/base64"
	"fmt"
)

// Attachment is a named binary payload carried inline in a chat message.
// Data holds the payload encoded as standard base64.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
	Data string `json:"data"`
}

// Decode returns the raw payload bytes.
func (a Attachment) Decode() ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(a.Data)
	if err != nil {
		return nil, fmt.Errorf("decode attachment %q: %w", a.Name, err)
	}
	return raw, nil
}

// ChatMessage is the outbound payload of SendMessage.
type ChatMessage struct {
	Message     string       `json:"message"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Response is the envelope every Client operation returns.
//
// Success is true only when the round trip finished with a 2xx status and the
// body parsed. On failure Error carries a human-readable description and the
// data fields are left empty.
type Response struct {
	Success           bool              `json:"success"`
	Result            string            `json:"result,omitempty"`
	VectorIDMap       map[string]string `json:"vectorIdMap,omitempty"`
	VectorAttachments []any             `json:"vectorAttachments,omitempty"`
	Error             string            `json:"error,omitempty"`
}

func failure(err error) *Response {
	return &Response{Success: false, Error: err.Error()}
}

// chatRequest is the JSON body posted to /anonymous/chat.
type chatRequest struct {
	Message     string       `json:"message"`
	ChatbotID   string       `json:"chatbotId"`
	SessionID   string       `json:"sessionId"`
	Attachments []Attachment `json:"attachments"`
}
