package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/credence/internal/text"
	"github.com/ppiankov/credence/internal/util"
)

// EndpointPredictor calls a model served behind a TensorFlow Serving style
// REST endpoint
type EndpointPredictor struct {
	url         string
	inputLength int
	httpClient  *http.Client
}

type endpointRequest struct {
	Instances [][]float64 `json:"instances"`
}

type endpointResponse struct {
	Predictions [][]float64 `json:"predictions"`
	Error       string      `json:"error,omitempty"`
}

// NewEndpointPredictor creates a new endpoint predictor
func NewEndpointPredictor(config Config) (*EndpointPredictor, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("model endpoint URL is required")
	}

	inputLength := config.InputLength
	if inputLength <= 0 {
		inputLength = 100
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &EndpointPredictor{
		url:         config.BaseURL,
		inputLength: inputLength,
		httpClient:  util.NewHTTPClient(timeout, config.HTTPProxy, config.HTTPSProxy, config.NoProxy),
	}, nil
}

// Name returns the provider name
func (p *EndpointPredictor) Name() string {
	return "endpoint"
}

// Predict posts the encoded text and returns the first prediction
func (p *EndpointPredictor) Predict(ctx context.Context, input string) ([]float64, error) {
	body, err := json.Marshal(endpointRequest{
		Instances: [][]float64{Encode(text.Normalize(input), p.inputLength)},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var out endpointResponse
	if resp.StatusCode != http.StatusOK {
		if err := json.Unmarshal(respBody, &out); err == nil && out.Error != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, out.Error)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(out.Predictions) == 0 {
		return nil, fmt.Errorf("%w: empty predictions", ErrMalformedVector)
	}

	return out.Predictions[0], nil
}
