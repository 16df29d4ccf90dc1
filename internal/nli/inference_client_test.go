package nli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroshot-labs/label-hunter/internal/apperr"
)

func classifyRequest() Request {
	return Request{
		Model:      "test-nli",
		Premise:    "The factory released toxic smoke into the river.",
		Labels:     []string{"water pollution", "recycling"},
		Hypotheses: []string{"This text is about water pollution", "This text is about recycling"},
		MultiLabel: true,
	}
}

func TestInferenceClient_Classify(t *testing.T) {
	var gotBody Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/classify", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		// Servers sort labels by score, so echo them reordered.
		_ = json.NewEncoder(w).Encode(Result{
			Labels: []string{"water pollution", "recycling"},
			Scores: []float64{0.91, 0.07},
		})
	}))
	defer srv.Close()

	client, err := NewInferenceClient(srv.URL)
	require.NoError(t, err)

	res, err := client.Classify(context.Background(), classifyRequest())
	require.NoError(t, err)

	assert.Equal(t, "test-nli", gotBody.Model)
	assert.True(t, gotBody.MultiLabel)
	assert.Len(t, gotBody.Hypotheses, 2)

	score, ok := res.ScoreFor("water pollution")
	require.True(t, ok)
	assert.InDelta(t, 0.91, score, 1e-9)

	score, ok = res.ScoreFor("recycling")
	require.True(t, ok)
	assert.InDelta(t, 0.07, score, 1e-9)

	_, ok = res.ScoreFor("unknown label")
	assert.False(t, ok)
}

func TestInferenceClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client, err := NewInferenceClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), classifyRequest())
	require.Error(t, err)

	var se *apperr.ScoringUnavailableError
	assert.ErrorAs(t, err, &se)
}

func TestInferenceClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before the call

	client, err := NewInferenceClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), classifyRequest())
	require.Error(t, err)

	var se *apperr.ScoringUnavailableError
	assert.ErrorAs(t, err, &se)
}

func TestInferenceClient_InputTooLongStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "sequence too long", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	client, err := NewInferenceClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), classifyRequest())
	require.Error(t, err)

	var le *apperr.InputTooLongError
	assert.ErrorAs(t, err, &le)
}

func TestInferenceClient_MaxInputCharsCheckedClientSide(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client, err := NewInferenceClient(srv.URL, WithMaxInputChars(16))
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), classifyRequest())
	require.Error(t, err)

	var le *apperr.InputTooLongError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 16, le.MaxChars)
	assert.False(t, called, "over-long input must be rejected before reaching the server")
}

func TestInferenceClient_Validation(t *testing.T) {
	client, err := NewInferenceClient("http://localhost:0")
	require.NoError(t, err)

	var ve *apperr.ValidationError

	_, err = client.Classify(context.Background(), Request{Labels: []string{"a"}, Hypotheses: []string{"h"}})
	assert.ErrorAs(t, err, &ve)

	_, err = client.Classify(context.Background(), Request{Premise: "text"})
	assert.ErrorAs(t, err, &ve)

	_, err = client.Classify(context.Background(), Request{Premise: "text", Labels: []string{"a", "b"}, Hypotheses: []string{"h"}})
	assert.ErrorAs(t, err, &ve)
}

func TestInferenceClient_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Result{
			Labels: []string{"water pollution"},
			Scores: []float64{0.9},
		})
	}))
	defer srv.Close()

	client, err := NewInferenceClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Classify(context.Background(), classifyRequest())
	require.Error(t, err)

	var se *apperr.ScoringUnavailableError
	assert.ErrorAs(t, err, &se)
}
