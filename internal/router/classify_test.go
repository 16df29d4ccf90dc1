package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroshot-labs/label-hunter/internal/apperr"
	"github.com/zeroshot-labs/label-hunter/internal/dto"
	"github.com/zeroshot-labs/label-hunter/internal/nli"
)

type fakeClient struct {
	err error
}

func (f *fakeClient) Classify(ctx context.Context, req nli.Request) (*nli.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	res := &nli.Result{}
	for _, label := range req.Labels {
		score := 0.1
		if strings.Contains(req.Premise, label) {
			score = 0.9
		}
		res.Labels = append(res.Labels, label)
		res.Scores = append(res.Scores, score)
	}
	return res, nil
}

func newTestServer(client nli.Client) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()
	NewClassifyRouter(e, client).Bind()
	return e
}

func doJSON(t *testing.T, e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestClassifyHandler(t *testing.T) {
	e := newTestServer(&fakeClient{})

	rec := doJSON(t, e, "/api/v1/classify", `{
		"documents": ["a story about recycling"],
		"labels": ["recycling", "water pollution"],
		"hypothesis_template": "This text is about {}",
		"threshold": 0.5
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.ClassifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, []string{"recycling", "water pollution"}, resp.Labels)
	require.Len(t, resp.Records, 1)

	record := resp.Records[0]
	assert.Equal(t, 0, record.DocumentIndex)
	assert.Greater(t, record.Scores["recycling"], 0.5)
	assert.Less(t, record.Scores["water pollution"], 0.3)
	assert.True(t, record.Relevant["recycling"])
	assert.False(t, record.Relevant["water pollution"])
}

func TestClassifyHandler_EmptyDocuments(t *testing.T) {
	e := newTestServer(&fakeClient{})

	rec := doJSON(t, e, "/api/v1/classify", `{"documents": [], "labels": ["recycling"]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty document collection")
}

func TestClassifyHandler_InvalidThreshold(t *testing.T) {
	e := newTestServer(&fakeClient{})

	rec := doJSON(t, e, "/api/v1/classify", `{
		"documents": ["some text"],
		"labels": ["recycling"],
		"threshold": 1.5
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid threshold")
}

func TestClassifyHandler_ScoringUnavailable(t *testing.T) {
	e := newTestServer(&fakeClient{err: apperr.NewScoringUnavailable("model not loaded", nil)})

	rec := doJSON(t, e, "/api/v1/classify", `{"documents": ["some text"], "labels": ["recycling"]}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestClassifyHandler_SkipFailures(t *testing.T) {
	e := newTestServer(&fakeClient{err: apperr.NewScoringUnavailable("model not loaded", nil)})

	rec := doJSON(t, e, "/api/v1/classify", `{
		"documents": ["some text", "more text"],
		"labels": ["recycling"],
		"skip_failures": true
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.ClassifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Records)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, 0, resp.Skipped[0].DocumentIndex)
	assert.Equal(t, 1, resp.Skipped[1].DocumentIndex)
}

func TestAssignHandler(t *testing.T) {
	e := newTestServer(&fakeClient{})

	rec := doJSON(t, e, "/api/v1/assign", `{
		"labels": ["recycling", "water pollution"],
		"threshold": 0.5,
		"records": [
			{"document_index": 0, "scores": {"recycling": 0.9, "water pollution": 0.5}}
		]
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.AssignResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Assignments, 1)

	assert.True(t, resp.Assignments[0].Relevant["recycling"])
	assert.False(t, resp.Assignments[0].Relevant["water pollution"], "score equal to threshold is not relevant")
}

func TestAssignHandler_MissingLabelScore(t *testing.T) {
	e := newTestServer(&fakeClient{})

	rec := doJSON(t, e, "/api/v1/assign", `{
		"labels": ["recycling", "water pollution"],
		"threshold": 0.5,
		"records": [
			{"document_index": 0, "scores": {"recycling": 0.9}}
		]
	}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
