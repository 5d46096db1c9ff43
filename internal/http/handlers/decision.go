package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/goalflow-ai/goalflow-backend/internal/engine"
	"github.com/goalflow-ai/goalflow-backend/internal/http/response"
	pkgerrors "github.com/goalflow-ai/goalflow-backend/internal/pkg/errors"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/repos"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

type DecisionHandler struct {
	log    *logger.Logger
	engine *engine.Engine
	repo   repos.DecisionRecordRepo
}

func NewDecisionHandler(log *logger.Logger, eng *engine.Engine, repo repos.DecisionRecordRepo) *DecisionHandler {
	return &DecisionHandler{
		log:    log.With("handler", "DecisionHandler"),
		engine: eng,
		repo:   repo,
	}
}

type evaluateRequest struct {
	Intent string `json:"intent"`
	Days   int    `json:"days"`
	Locale string `json:"locale"`
}

// EvaluateIntent runs the decision pipeline. An empty intent is not a request
// error: the engine answers it with a clarification outcome.
func (h *DecisionHandler) EvaluateIntent(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	out, err := h.engine.Evaluate(c.Request.Context(), engine.Intent{
		Text:   req.Intent,
		Days:   req.Days,
		Locale: req.Locale,
	})
	if err != nil {
		h.log.Error("EvaluateIntent failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "evaluate_failed", err)
		return
	}
	response.RespondOK(c, out)
}

func (h *DecisionHandler) ListDecisions(c *gin.Context) {
	filters := repos.DecisionListFilters{
		IntentLang: strings.TrimSpace(c.Query("lang")),
		Gate:       strings.TrimSpace(c.Query("gate")),
		Outcome:    strings.TrimSpace(c.Query("outcome")),
		Category:   strings.TrimSpace(c.Query("category")),
		Verdict:    strings.TrimSpace(c.Query("verdict")),
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	records, err := h.repo.List(c.Request.Context(), filters, limit, offset)
	if err != nil {
		h.log.Error("ListDecisions failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_decisions_failed", err)
		return
	}
	response.RespondOK(c, gin.H{"decisions": toDecisionViews(records)})
}

func (h *DecisionHandler) GetDecision(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}
	rec, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			response.RespondError(c, http.StatusNotFound, "decision_not_found", err)
			return
		}
		h.log.Error("GetDecision failed", "error", err, "id", id)
		response.RespondError(c, http.StatusInternalServerError, "get_decision_failed", err)
		return
	}
	response.RespondOK(c, toDecisionView(rec))
}

// decisionView is the read-model projection; raw intent is included, the
// derived keys let operators correlate with logs and spans.
type decisionView struct {
	ID               uuid.UUID `json:"id"`
	RawIntent        string    `json:"raw_intent"`
	NormalizedIntent string    `json:"normalized_intent"`
	IntentLang       string    `json:"intent_lang"`
	Days             int       `json:"days"`
	DaysBucket       string    `json:"days_bucket"`
	Gate             string    `json:"gate"`
	Category         *string   `json:"category,omitempty"`
	Verdict          string    `json:"verdict"`
	Outcome          string    `json:"outcome"`
	Fingerprint      string    `json:"fingerprint,omitempty"`
	PolicyVersion    string    `json:"policy_version"`
	UpdatedAt        string    `json:"updated_at"`
}

func toDecisionView(rec *types.DecisionRecord) decisionView {
	return decisionView{
		ID:               rec.ID,
		RawIntent:        rec.RawIntent,
		NormalizedIntent: rec.NormalizedIntent,
		IntentLang:       rec.IntentLang,
		Days:             rec.Days,
		DaysBucket:       rec.DaysBucket,
		Gate:             rec.Gate,
		Category:         rec.Category,
		Verdict:          rec.Verdict,
		Outcome:          rec.Outcome,
		Fingerprint:      rec.Fingerprint,
		PolicyVersion:    rec.PolicyVersion,
		UpdatedAt:        rec.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toDecisionViews(records []*types.DecisionRecord) []decisionView {
	out := make([]decisionView, 0, len(records))
	for _, rec := range records {
		out = append(out, toDecisionView(rec))
	}
	return out
}
