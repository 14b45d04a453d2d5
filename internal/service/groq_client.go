package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Imsaurav1/Ai-pdf-analyzer/internal/model"
)

const chatCompletionsEndpoint = "/chat/completions"

const resumePromptFormat = `You are an HR expert.
Analyze the resume and return JSON:

{
  "summary": "",
  "strengths": [],
  "weaknesses": [],
  "suggestions": []
}

Resume:
%s`

// AnalysisGateway is the external text-analysis capability. Implementations
// may fail for provider reasons (timeout, bad key, malformed response); the
// orchestrator folds all of those into ErrAnalysisFailed.
type AnalysisGateway interface {
	Analyze(ctx context.Context, text string, documentType model.DocumentType) (string, error)
}

type groqClient struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewGroqClient creates an AnalysisGateway backed by Groq's OpenAI-compatible
// chat completions API. The timeout bounds the whole provider round trip.
func NewGroqClient(baseURL, apiKey, modelName string, timeout time.Duration) AnalysisGateway {
	return &groqClient{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   modelName,
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *groqClient) Analyze(ctx context.Context, text string, documentType model.DocumentType) (string, error) {
	var prompt string
	if documentType == model.DocumentTypeResume {
		prompt = fmt.Sprintf(resumePromptFormat, text)
	} else {
		prompt = "Summarize clearly:\n" + text
	}

	requestBody := chatCompletionRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: 0.3,
	}

	bodyJSON, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsEndpoint, bytes.NewReader(bodyJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp struct {
			Error struct {
				Message string `json:"message"`
				Type    string `json:"type"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return "", fmt.Errorf("completion failed: %s", errorResp.Error.Message)
		}
		return "", fmt.Errorf("completion failed: HTTP %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion response contained no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
