package nli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/zeroshot-labs/label-hunter/internal/apperr"
)

type InferenceOption func(client *InferenceClient)

// InferenceClient talks to an NLI inference server over HTTP. The server
// owns the model and the compute device; the client only carries the
// endpoint, the model name and a timeout.
type InferenceClient struct {
	base          url.URL
	maxInputChars *int
	http          *http.Client
}

const defaultTimeout = 60 * time.Second

func NewInferenceClient(baseUrl string, opts ...InferenceOption) (*InferenceClient, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &InferenceClient{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) InferenceOption {
	return func(client *InferenceClient) {
		client.http = httpClient
	}
}

func WithTimeout(timeout time.Duration) InferenceOption {
	return func(client *InferenceClient) {
		client.http.Timeout = timeout
	}
}

// WithMaxInputChars rejects over-long inputs client-side instead of
// round-tripping them to the server.
func WithMaxInputChars(maxChars int) InferenceOption {
	return func(client *InferenceClient) {
		client.maxInputChars = &maxChars
	}
}

func (ic *InferenceClient) Classify(ctx context.Context, req Request) (*Result, error) {
	if req.Premise == "" {
		return nil, apperr.NewValidation("missing premise text to classify")
	}
	if len(req.Labels) == 0 {
		return nil, apperr.NewValidation("missing candidate labels")
	}
	if len(req.Hypotheses) != len(req.Labels) {
		return nil, apperr.NewValidation(
			fmt.Sprintf("got %d hypotheses for %d labels", len(req.Hypotheses), len(req.Labels)))
	}
	if req.Model == "" {
		req.Model = defaultModel
	}

	if ic.maxInputChars != nil {
		for _, hypothesis := range req.Hypotheses {
			if pairLen := len(req.Premise) + len(hypothesis); pairLen > *ic.maxInputChars {
				return nil, apperr.NewInputTooLong(pairLen, *ic.maxInputChars)
			}
		}
	}

	var resp Result
	if err := ic.do(ctx, http.MethodPost, "/api/classify", req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Labels) != len(req.Labels) || len(resp.Scores) != len(resp.Labels) {
		return nil, apperr.NewScoringUnavailable(
			fmt.Sprintf("malformed response: %d labels, %d scores for %d requested labels",
				len(resp.Labels), len(resp.Scores), len(req.Labels)),
			nil,
		)
	}

	return &resp, nil
}

func (ic *InferenceClient) do(ctx context.Context, method, path string, reqData, respData any) error {
	reqDataBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := ic.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), bytes.NewReader(reqDataBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := ic.http.Do(request)
	if err != nil {
		return apperr.NewScoringUnavailable("nli server unreachable", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperr.NewScoringUnavailable("failed to read nli server response", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusRequestEntityTooLarge || resp.StatusCode == http.StatusUnprocessableEntity:
		return apperr.NewInputTooLong(0, 0)
	case resp.StatusCode >= http.StatusInternalServerError:
		return apperr.NewScoringUnavailable(
			fmt.Sprintf("nli server error: status %d, body: %s", resp.StatusCode, string(respBody)), nil)
	default:
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
