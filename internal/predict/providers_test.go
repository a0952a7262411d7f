package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
)

const goodAnswer = `{"credibility": 0.7, "subjects": {"Politics": 0.9, "Technology": 0.1}, "sentiment": {"positive": 0.2, "neutral": 0.5, "negative": 0.3}}`

func checkGoodVector(t *testing.T, v []float64) {
	t.Helper()
	want := []float64{0.7, 0.9, 0.1, 0, 0, 0.2, 0.5, 0.3}
	if len(v) != len(want) {
		t.Fatalf("Expected %v, got %v", want, v)
	}
	for i := range want {
		if v[i] != want[i] {
			t.Fatalf("Expected %v, got %v", want, v)
		}
	}
}

func TestEndpointPredictor_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		var req endpointRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
			return
		}
		if len(req.Instances) != 1 || len(req.Instances[0]) != 10 {
			t.Errorf("Expected one instance of length 10, got %v", req.Instances)
		}
		if req.Instances[0][2] != 1 || req.Instances[0][3] != 0 {
			t.Errorf("Expected three words encoded, got %v", req.Instances[0])
		}

		_ = json.NewEncoder(w).Encode(endpointResponse{
			Predictions: [][]float64{{0.9, 0.1, 0.2, 0.3, 0.4, 0.5, 0.3, 0.2}},
		})
	}))
	defer server.Close()

	p, err := NewEndpointPredictor(Config{BaseURL: server.URL, InputLength: 10, Timeout: 5})
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	v, err := p.Predict(context.Background(), "Three words here!")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(v) != 8 || v[0] != 0.9 {
		t.Errorf("Unexpected prediction: %v", v)
	}
}

func TestEndpointPredictor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "model not loaded"}`, "model not loaded"},
		{"plain error", http.StatusBadGateway, `upstream down`, "upstream down"},
		{"empty predictions", http.StatusOK, `{"predictions": []}`, "malformed"},
		{"not json", http.StatusOK, `<html>`, "unmarshal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p, _ := NewEndpointPredictor(Config{BaseURL: server.URL, Timeout: 5})
			_, err := p.Predict(context.Background(), "text")
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestOpenAIPredictor_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		var req openai.ChatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
			return
		}
		if req.ResponseFormat == nil || req.ResponseFormat.Type != openai.ChatCompletionResponseFormatTypeJSONObject {
			t.Error("Expected JSON response format")
		}

		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:    "chatcmpl-123",
			Model: "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: goodAnswer}, FinishReason: "stop"},
			},
		})
	}))
	defer server.Close()

	p, err := NewOpenAIPredictor(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5, Labels: testLabels})
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	v, err := p.Predict(context.Background(), "Lawmakers passed the budget.")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	checkGoodVector(t, v)
}

func TestOpenAIPredictor_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	p, _ := NewOpenAIPredictor(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5, Labels: testLabels})
	if _, err := p.Predict(context.Background(), "text"); err == nil {
		t.Fatal("Expected error for API failure")
	}
}

func TestOllamaPredictor_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("Expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Bad request body: %v", err)
			return
		}
		if req.Format != "json" || req.Stream {
			t.Errorf("Expected non-streaming JSON request, got format=%q stream=%v", req.Format, req.Stream)
		}

		_ = json.NewEncoder(w).Encode(ollamaResponse{Model: "llama3.1", Response: goodAnswer, Done: true})
	}))
	defer server.Close()

	p, err := NewOllamaPredictor(Config{BaseURL: server.URL + "/", Model: "llama3.1", Timeout: 5, Labels: testLabels})
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	v, err := p.Predict(context.Background(), "text")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	checkGoodVector(t, v)
}

func TestOllamaPredictor_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "model 'llama3.1' not found"}`))
	}))
	defer server.Close()

	p, _ := NewOllamaPredictor(Config{BaseURL: server.URL, Model: "llama3.1", Timeout: 5})
	_, err := p.Predict(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}
}

func TestAnthropicPredictor_Predict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages" {
			t.Errorf("Expected path /v1/messages, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected x-api-key test-key, got %s", r.Header.Get("x-api-key"))
		}
		if r.Header.Get("anthropic-version") == "" {
			t.Error("Expected anthropic-version header")
		}

		_, _ = w.Write([]byte(`{"id": "msg_1", "model": "claude", "content": [{"type": "text", "text": ` + jsonString(goodAnswer) + `}]}`))
	}))
	defer server.Close()

	p, err := NewAnthropicPredictor(Config{APIKey: "test-key", BaseURL: server.URL, Timeout: 5, Labels: testLabels})
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	v, err := p.Predict(context.Background(), "text")
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	checkGoodVector(t, v)
}

func TestAnthropicPredictor_Errors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") == "bad" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": "msg_1", "content": [{"type": "text", "text": "I cannot rate this."}]}`))
	}))
	defer server.Close()

	p, _ := NewAnthropicPredictor(Config{APIKey: "bad", BaseURL: server.URL, Timeout: 5})
	_, err := p.Predict(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "authentication_error") {
		t.Errorf("Expected authentication error, got %v", err)
	}

	p, _ = NewAnthropicPredictor(Config{APIKey: "good", BaseURL: server.URL, Timeout: 5})
	_, err = p.Predict(context.Background(), "text")
	if !errors.Is(err, ErrMalformedVector) {
		t.Errorf("Expected ErrMalformedVector for prose answer, got %v", err)
	}
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
