package gemini

import "strings"

// Role values understood by the generateContent API.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

type Part struct {
	Text string `json:"text"`
}

type Content struct {
	Parts []Part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type Request struct {
	Contents []Content `json:"contents"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type Response struct {
	Candidates []Candidate `json:"candidates"`
}

// UserRequest wraps one block of prompt text the way the API expects
// it: a single user-role content holding a single text part.
func UserRequest(text string) Request {
	return Request{
		Contents: []Content{{
			Role:  RoleUser,
			Parts: []Part{{Text: text}},
		}},
	}
}

// FirstText returns the first non-blank candidate part, trimmed.
func (r *Response) FirstText() (string, bool) {
	for _, cand := range r.Candidates {
		for _, part := range cand.Content.Parts {
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}

			return text, true
		}
	}

	return "", false
}
