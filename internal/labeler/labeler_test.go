package labeler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeroshot-labs/label-hunter/internal/apperr"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"github.com/zeroshot-labs/label-hunter/internal/nli"
)

// fakeClient scores a label high when the premise mentions any of its
// words, low otherwise. Results come back sorted by score descending,
// the way real zero-shot services return them.
type fakeClient struct {
	calls    atomic.Int64
	failWhen func(premise string) error
}

func (f *fakeClient) Classify(ctx context.Context, req nli.Request) (*nli.Result, error) {
	f.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.failWhen != nil {
		if err := f.failWhen(req.Premise); err != nil {
			return nil, err
		}
	}

	type scored struct {
		label string
		score float64
	}
	out := make([]scored, len(req.Labels))
	for i, label := range req.Labels {
		score := 0.05
		for _, word := range strings.Fields(label) {
			if strings.Contains(strings.ToLower(req.Premise), word) {
				score = 0.92
				break
			}
		}
		out[i] = scored{label: label, score: score}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].score > out[j].score })

	res := &nli.Result{}
	for _, s := range out {
		res.Labels = append(res.Labels, s.label)
		res.Scores = append(res.Scores, s.score)
	}
	return res, nil
}

var testTemplate = domain.HypothesisTemplate("This text is about {}")

func TestLabeler_Score(t *testing.T) {
	client := &fakeClient{}
	l := New(client)

	docs := []string{"The factory released toxic smoke into the water of the river."}
	labels := []string{"water pollution", "recycling"}

	result, err := l.Score(context.Background(), docs, labels, testTemplate)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Empty(t, result.Skipped)

	record := result.Records[0]
	assert.Equal(t, 0, record.DocumentIndex)
	assert.Equal(t, labels, record.Labels, "label order must follow the input, not the service ordering")
	require.NoError(t, record.Validate())

	assert.Greater(t, record.Scores["water pollution"], 0.5)
	assert.Less(t, record.Scores["recycling"], 0.3)

	assignments, err := AssignAll(result.Records, 0.5)
	require.NoError(t, err)
	assert.True(t, assignments[0].Relevant["water pollution"])
	assert.False(t, assignments[0].Relevant["recycling"])
}

func TestLabeler_Score_OneRecordPerDocumentInOrder(t *testing.T) {
	client := &fakeClient{}
	l := New(client, WithBatchSize(2))

	docs := make([]string, 7)
	for i := range docs {
		docs[i] = fmt.Sprintf("document number %d about recycling", i)
	}
	labels := []string{"recycling", "water pollution", "deforestation"}

	result, err := l.Score(context.Background(), docs, labels, testTemplate)
	require.NoError(t, err)
	require.Len(t, result.Records, len(docs))

	for i, record := range result.Records {
		assert.Equal(t, i, record.DocumentIndex)
		require.NoError(t, record.Validate())
		assert.Len(t, record.Scores, len(labels))
	}

	assert.Equal(t, int64(len(docs)), client.calls.Load(), "all labels for one document must share one service call")
}

func TestLabeler_Score_Idempotent(t *testing.T) {
	l := New(&fakeClient{})

	docs := []string{"a story about recycling", "a story about deforestation"}
	labels := []string{"recycling", "deforestation"}

	first, err := l.Score(context.Background(), docs, labels, testTemplate)
	require.NoError(t, err)
	second, err := l.Score(context.Background(), docs, labels, testTemplate)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}

func TestLabeler_Score_InvalidInput(t *testing.T) {
	l := New(&fakeClient{})
	labels := []string{"recycling"}

	var ve *apperr.ValidationError

	_, err := l.Score(context.Background(), nil, labels, testTemplate)
	assert.ErrorAs(t, err, &ve, "empty document collection")

	_, err = l.Score(context.Background(), []string{"text", ""}, labels, testTemplate)
	assert.ErrorAs(t, err, &ve, "empty document")

	_, err = l.Score(context.Background(), []string{"text"}, nil, testTemplate)
	assert.ErrorAs(t, err, &ve, "empty label set")

	_, err = l.Score(context.Background(), []string{"text"}, []string{"a", "a"}, testTemplate)
	assert.ErrorAs(t, err, &ve, "duplicate label")

	_, err = l.Score(context.Background(), []string{"text"}, labels, domain.HypothesisTemplate("no slot here"))
	assert.ErrorAs(t, err, &ve, "template without slot")
}

func TestLabeler_Score_FailFast(t *testing.T) {
	client := &fakeClient{
		failWhen: func(premise string) error {
			if strings.Contains(premise, "poison") {
				return apperr.NewScoringUnavailable("model crashed", nil)
			}
			return nil
		},
	}
	l := New(client, WithFailurePolicy(FailFast))

	docs := []string{"clean one", "the poison pill", "another clean one"}

	_, err := l.Score(context.Background(), docs, []string{"recycling"}, testTemplate)
	require.Error(t, err)

	var se *apperr.ScoringUnavailableError
	assert.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "document 1")
}

func TestLabeler_Score_SkipAndReport(t *testing.T) {
	client := &fakeClient{
		failWhen: func(premise string) error {
			if strings.Contains(premise, "poison") {
				return apperr.NewInputTooLong(9999, 512)
			}
			return nil
		},
	}
	l := New(client, WithFailurePolicy(SkipAndReport), WithBatchSize(2))

	docs := []string{"clean one", "the poison pill", "another clean one", "poison again"}
	labels := []string{"recycling"}

	result, err := l.Score(context.Background(), docs, labels, testTemplate)
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, 0, result.Records[0].DocumentIndex)
	assert.Equal(t, 2, result.Records[1].DocumentIndex)

	require.Len(t, result.Skipped, 2)
	assert.Equal(t, 1, result.Skipped[0].DocumentIndex)
	assert.Equal(t, 3, result.Skipped[1].DocumentIndex)

	var le *apperr.InputTooLongError
	assert.ErrorAs(t, result.Skipped[0].Err, &le)
}

func TestLabeler_Score_ConcurrentWorkersKeepOrder(t *testing.T) {
	client := &fakeClient{}
	l := New(client, WithBatchSize(3), WithWorkers(4))

	docs := make([]string, 25)
	for i := range docs {
		docs[i] = fmt.Sprintf("document number %d", i)
	}
	labels := []string{"recycling", "water pollution"}

	result, err := l.Score(context.Background(), docs, labels, testTemplate)
	require.NoError(t, err)
	require.Len(t, result.Records, len(docs))

	for i, record := range result.Records {
		assert.Equal(t, i, record.DocumentIndex, "workers must not reorder the output")
	}
}

func TestLabeler_Score_ConcurrentFailFast(t *testing.T) {
	client := &fakeClient{
		failWhen: func(premise string) error {
			if strings.Contains(premise, "number 13") {
				return apperr.NewScoringUnavailable("model crashed", nil)
			}
			return nil
		},
	}
	l := New(client, WithBatchSize(2), WithWorkers(3))

	docs := make([]string, 20)
	for i := range docs {
		docs[i] = fmt.Sprintf("document number %d", i)
	}

	_, err := l.Score(context.Background(), docs, []string{"recycling"}, testTemplate)
	require.Error(t, err)
}
