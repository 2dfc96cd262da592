package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// The assistant service is an external black box reached over plain HTTP:
// POST /process takes {"text": ...} and answers {"response": ...},
// POST /speech takes multipart audio and answers the transcription JSON.

const defaultAssistantURL = "http://localhost:8000"

var assistantClient = &http.Client{Timeout: 30 * time.Second}

type ProcessRequest struct {
	Text string `json:"text"`
}

type ProcessResponse struct {
	Response string `json:"response"`
}

func AssistantBaseURL() string {
	if url := os.Getenv("ASSISTANT_URL"); url != "" {
		return url
	}
	return defaultAssistantURL
}

// ProcessText forwards a prompt to the assistant service and returns its
// reply text along with the verbatim response body.
func ProcessText(text string) (string, []byte, error) {
	payload, err := json.Marshal(ProcessRequest{Text: text})
	if err != nil {
		return "", nil, err
	}

	resp, err := assistantClient.Post(AssistantBaseURL()+"/process", "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", nil, fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("assistant response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("assistant returned status %d", resp.StatusCode)
	}

	var parsed ProcessResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", nil, fmt.Errorf("assistant response: %w", err)
	}

	return parsed.Response, body, nil
}

// Transcribe streams a multipart audio body through to the assistant
// service's /speech endpoint and returns its JSON verbatim.
func Transcribe(body io.Reader, contentType string) ([]byte, error) {
	resp, err := assistantClient.Post(AssistantBaseURL()+"/speech", contentType, body)
	if err != nil {
		return nil, fmt.Errorf("speech request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("speech response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech service returned status %d", resp.StatusCode)
	}

	return payload, nil
}
