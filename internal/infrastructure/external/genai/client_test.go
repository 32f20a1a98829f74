package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

func TestGenerateContentResponse_Parsing(t *testing.T) {
	jsonData := `{
    "candidates": [
        {
            "content": {
                "role": "model",
                "parts": [
                    {"text": "Dear Parent,\n"},
                    {"text": "Alice has shown excellent progress this term."}
                ]
            },
            "finishReason": "STOP"
        }
    ]
}`

	var response GenerateContentResponse
	err := json.Unmarshal([]byte(jsonData), &response)
	assert.NoError(t, err)

	assert.Len(t, response.Candidates, 1)
	assert.Equal(t, "Dear Parent,\nAlice has shown excellent progress this term.", response.Text())
}

func TestGenerateContentResponse_Empty(t *testing.T) {
	var response GenerateContentResponse
	assert.Equal(t, "", response.Text())
}

func TestReportPrompt_ContainsStudentFacts(t *testing.T) {
	prompt := reportPrompt(ReportSubject{
		Name:        "Alice Johnson",
		Grade:       10,
		Class:       "A",
		Performance: "Excellent",
		Attendance:  92,
	})

	assert.Contains(t, prompt, "Name: Alice Johnson")
	assert.Contains(t, prompt, "Grade: 10")
	assert.Contains(t, prompt, "Class: A")
	assert.Contains(t, prompt, "Performance: Excellent")
	assert.Contains(t, prompt, "Attendance: 92%")
	assert.Contains(t, prompt, "Do not use markdown formatting")
}

func TestGenerateStudentReport_NotConfigured(t *testing.T) {
	client := NewClient(ClientConfig{APIKey: ""})

	_, err := client.GenerateStudentReport(context.Background(), ReportSubject{Name: "Alice"})
	assert.ErrorIs(t, err, shared.ErrNotConfigured)
}

func TestGenerateStudentReport_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"))
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var request GenerateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Contents, 1)
		require.Len(t, request.Contents[0].Parts, 1)
		assert.Contains(t, request.Contents[0].Parts[0].Text, "Name: Bob Smith")

		response := GenerateContentResponse{
			Candidates: []CandidateDTO{
				{Content: ContentDTO{Parts: []PartDTO{{Text: "A fine term for Bob."}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	config := DefaultClientConfig("test-key")
	config.BaseURL = server.URL
	client := NewClient(config)

	text, err := client.GenerateStudentReport(context.Background(), ReportSubject{
		Name:        "Bob Smith",
		Grade:       9,
		Class:       "B",
		Performance: "Good",
		Attendance:  88,
	})
	require.NoError(t, err)
	assert.Equal(t, "A fine term for Bob.", text)
}

func TestGenerateStudentReport_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error": {"code": 403, "message": "API key not valid", "status": "PERMISSION_DENIED"}}`))
	}))
	defer server.Close()

	config := DefaultClientConfig("bad-key")
	config.BaseURL = server.URL
	client := NewClient(config)

	_, err := client.GenerateStudentReport(context.Background(), ReportSubject{Name: "Bob"})
	assert.ErrorIs(t, err, shared.ErrExternalService)
	assert.Contains(t, err.Error(), "API key not valid")
}
