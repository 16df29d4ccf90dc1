package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/zeroshot-labs/label-hunter/internal/domain"
	"github.com/zeroshot-labs/label-hunter/internal/dto"
	"github.com/zeroshot-labs/label-hunter/internal/labeler"
	"github.com/zeroshot-labs/label-hunter/internal/nli"
)

type ClassifyRouter struct {
	e      *echo.Echo
	client nli.Client
	model  string
}

type ClassifyRouterOption func(r *ClassifyRouter)

func WithModel(model string) ClassifyRouterOption {
	return func(r *ClassifyRouter) {
		r.model = model
	}
}

func NewClassifyRouter(e *echo.Echo, client nli.Client, opts ...ClassifyRouterOption) *ClassifyRouter {
	r := &ClassifyRouter{
		e:      e,
		client: client,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func (r *ClassifyRouter) Bind() {
	v1 := r.e.Group("/api/v1")
	v1.POST("/classify", r.classifyHandler)
	v1.POST("/assign", r.assignHandler)
}

// classifyHandler scores documents against a candidate label set.
// @Summary Zero-shot classify documents
// @Description Scores every document against every label via NLI entailment. Scores are independent per label and do not sum to 1.
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "documents, labels and hypothesis template"
// @Success 200 {object} dto.ClassifyResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/classify [post]
func (r *ClassifyRouter) classifyHandler(c echo.Context) error {
	var req dto.ClassifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	policy := labeler.FailFast
	if req.SkipFailures {
		policy = labeler.SkipAndReport
	}

	l := labeler.New(r.client,
		labeler.WithModel(r.model),
		labeler.WithFailurePolicy(policy),
	)

	template := domain.DefaultHypothesisTemplate
	if req.HypothesisTemplate != "" {
		template = domain.HypothesisTemplate(req.HypothesisTemplate)
	}

	result, err := l.Score(c.Request().Context(), req.Documents, req.Labels, template)
	if err != nil {
		return err
	}

	var assignments []domain.LabelAssignment
	if req.Threshold != nil {
		assignments, err = labeler.AssignAll(result.Records, *req.Threshold)
		if err != nil {
			return err
		}
	}

	return c.JSON(http.StatusOK, dto.MapClassifyResponse(req.Labels, result, assignments))
}

// assignHandler re-derives hard labels from previously computed scores.
// @Summary Threshold score records into hard labels
// @Description A label is relevant iff its score is strictly greater than the threshold.
// @Accept json
// @Produce json
// @Param request body dto.AssignRequest true "score records and threshold"
// @Success 200 {object} dto.AssignResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/assign [post]
func (r *ClassifyRouter) assignHandler(c echo.Context) error {
	var req dto.AssignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	resp := dto.AssignResponse{Threshold: req.Threshold}
	for _, in := range req.Records {
		record := domain.ScoreRecord{
			DocumentIndex: in.DocumentIndex,
			Labels:        req.Labels,
			Scores:        in.Scores,
		}
		if err := record.Validate(); err != nil {
			return err
		}

		assignment, err := domain.Assign(record, req.Threshold)
		if err != nil {
			return err
		}

		resp.Assignments = append(resp.Assignments, dto.Assignment{
			DocumentIndex: assignment.DocumentIndex,
			Relevant:      assignment.Relevant,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
