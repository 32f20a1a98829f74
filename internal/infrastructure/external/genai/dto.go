package genai

import "strings"

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST DTOs
// ══════════════════════════════════════════════════════════════════════════════

// GenerateContentRequest is the request body for the generateContent endpoint.
type GenerateContentRequest struct {
	Contents []ContentDTO `json:"contents"`
}

// ContentDTO is a single piece of content in a request or response.
type ContentDTO struct {
	Role  string    `json:"role,omitempty"`
	Parts []PartDTO `json:"parts"`
}

// PartDTO is one part of a content payload. The hub only ever sends
// and receives plain text parts.
type PartDTO struct {
	Text string `json:"text"`
}

// newTextRequest wraps a plain text prompt into the request shape.
func newTextRequest(prompt string) GenerateContentRequest {
	return GenerateContentRequest{
		Contents: []ContentDTO{
			{Parts: []PartDTO{{Text: prompt}}},
		},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// RESPONSE DTOs
// ══════════════════════════════════════════════════════════════════════════════

// GenerateContentResponse is the response body of the generateContent endpoint.
type GenerateContentResponse struct {
	Candidates []CandidateDTO `json:"candidates"`
}

// CandidateDTO is one generated candidate.
type CandidateDTO struct {
	Content      ContentDTO `json:"content"`
	FinishReason string     `json:"finishReason,omitempty"`
}

// Text collects the text parts of the first candidate into a single string.
func (r *GenerateContentResponse) Text() string {
	if len(r.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range r.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

// APIErrorDTO is the error envelope returned on non-2xx responses.
type APIErrorDTO struct {
	ErrorDetail struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Error implements the error interface.
func (e *APIErrorDTO) Error() string {
	return e.ErrorDetail.Message
}
