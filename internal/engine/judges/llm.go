package judges

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/envutil"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/openai"
	"github.com/goalflow-ai/goalflow-backend/internal/repos"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

type llmJudges struct {
	ai      openai.Client
	log     *logger.Logger
	calls   repos.JudgeCallLogRepo
	timeout time.Duration
	allowed map[string]bool
}

// NewLLM builds the production judge set on top of the model client. calls
// may be nil; call logging is best-effort either way.
func NewLLM(ai openai.Client, log *logger.Logger, calls repos.JudgeCallLogRepo, allowedCategories []string) Judges {
	allowed := make(map[string]bool, len(allowedCategories))
	for _, c := range allowedCategories {
		allowed[strings.ToLower(c)] = true
	}
	return &llmJudges{
		ai:      ai,
		log:     log.With("service", "Judges"),
		calls:   calls,
		timeout: envutil.DurationSeconds("JUDGE_TIMEOUT_SECONDS", 6*time.Second),
		allowed: allowed,
	}
}

// call runs one judge invocation with a bounded timeout and logs it. Any
// failure is reported as ok=false.
func (j *llmJudges) call(ctx context.Context, judge, system, user, schemaName string, schema map[string]any) (map[string]any, bool) {
	cctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	start := time.Now()
	obj, err := j.ai.GenerateJSON(cctx, system, user, schemaName, schema)
	latency := time.Since(start)

	j.logCall(ctx, judge, user, obj, err, latency)

	if err != nil {
		j.log.Debug("judge call yielded no signal", "judge", judge, "error", err, "latency_ms", latency.Milliseconds())
		return nil, false
	}
	return obj, true
}

func (j *llmJudges) logCall(ctx context.Context, judge, prompt string, obj map[string]any, callErr error, latency time.Duration) {
	if j.calls == nil {
		return
	}
	entry := &types.JudgeCallLog{
		Judge:     judge,
		Model:     j.ai.Model(),
		Prompt:    prompt,
		Success:   callErr == nil,
		LatencyMS: latency.Milliseconds(),
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	if obj != nil {
		if raw, err := json.Marshal(obj); err == nil {
			entry.Response = string(raw)
		}
	}
	logCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := j.calls.Create(logCtx, entry); err != nil {
		j.log.Debug("judge call log insert failed", "judge", judge, "error", err)
	}
}

func confidenceSchema() map[string]any {
	return map[string]any{"type": "number", "minimum": 0, "maximum": 1}
}

func (j *llmJudges) RouteCategory(ctx context.Context, in IntentInfo) (CategoryResult, bool) {
	cats := make([]string, 0, len(j.allowed))
	for c := range j.allowed {
		cats = append(cats, c)
	}
	// Stable prompt text across runs.
	sort.Strings(cats)
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"category":    map[string]any{"type": "string"},
			"subcategory": map[string]any{"type": "string"},
			"confidence":  confidenceSchema(),
			"rationale":   map[string]any{"type": "string"},
		},
		"required":             []string{"category", "confidence"},
		"additionalProperties": false,
	}
	system := "You route a user's goal statement into exactly one category from the allowed list. Answer in the schema; confidence reflects how sure you are."
	user := fmt.Sprintf("Allowed categories: %s\nGoal language: %s\nGoal (%d days): %s",
		strings.Join(cats, ", "), in.IntentLang, in.Days, in.NormalizedIntent)

	obj, ok := j.call(ctx, "category_router", system, user, "category_route", schema)
	if !ok {
		return CategoryResult{}, false
	}
	return coerceCategory(obj, j.allowed)
}

func (j *llmJudges) AnalyzeCategory(ctx context.Context, in IntentInfo, category string) (AnalysisResult, bool) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"verdict":          map[string]any{"type": "string", "enum": []string{"actionable", "needs_clarify"}},
			"clear":            map[string]any{"type": "boolean"},
			"clarify_question": map[string]any{"type": "string"},
			"angles": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":       map[string]any{"type": "string"},
						"description": map[string]any{"type": "string"},
					},
					"required":             []string{"title"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"verdict", "clear"},
		"additionalProperties": false,
	}
	system := "You analyze a user's goal within its category. Mark it clear when it needs no reframing; otherwise either ask one clarifying question or propose up to three alternative angles. Respond in the goal's language."
	user := fmt.Sprintf("Category: %s\nGoal language: %s\nGoal (%d days): %s",
		category, in.IntentLang, in.Days, in.NormalizedIntent)

	obj, ok := j.call(ctx, "category_analysis", system, user, "category_analysis", schema)
	if !ok {
		return AnalysisResult{}, false
	}
	return coerceAnalysis(obj)
}

func (j *llmJudges) AssessRealism(ctx context.Context, in IntentInfo, category string) (RealismResult, bool) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"realism":     map[string]any{"type": "string", "enum": []string{"ok", "stretch", "unrealistic"}},
			"why_short":   map[string]any{"type": "string"},
			"adjustments": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
		},
		"required":             []string{"realism", "why_short"},
		"additionalProperties": false,
	}
	system := "You assess whether a goal is realistically achievable in the given number of days. Suggest concrete adjustments when it is a stretch or unrealistic."
	user := fmt.Sprintf("Category: %s\nGoal language: %s\nDays available: %d\nGoal: %s",
		category, in.IntentLang, in.Days, in.NormalizedIntent)

	obj, ok := j.call(ctx, "realism", system, user, "realism_assessment", schema)
	if !ok {
		return RealismResult{}, false
	}
	return coerceRealism(obj)
}

func (j *llmJudges) JudgeEquivalence(ctx context.Context, lang, intentA, intentB string) (EquivalenceResult, bool) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"same_request": map[string]any{"type": "boolean"},
			"confidence":   confidenceSchema(),
			"reason":       map[string]any{"type": "string"},
		},
		"required":             []string{"same_request", "confidence"},
		"additionalProperties": false,
	}
	system := "You decide whether two goal statements describe the same underlying request. Phrasing may differ; meaning is what counts."
	user := fmt.Sprintf("Language: %s\nA: %s\nB: %s", lang, intentA, intentB)

	obj, ok := j.call(ctx, "equivalence", system, user, "equivalence_check", schema)
	if !ok {
		return EquivalenceResult{}, false
	}
	return coerceEquivalence(obj)
}

func (j *llmJudges) AssessSafety(ctx context.Context, text string) (SafetyResult, bool) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"risk":   map[string]any{"type": "string", "enum": []string{"none", "low", "high"}},
			"reason": map[string]any{"type": "string"},
		},
		"required":             []string{"risk"},
		"additionalProperties": false,
	}
	system := "You assess whether a stated goal seeks harmful, illegal or exploitative outcomes. high means it must not be assisted."
	user := "Goal: " + text

	obj, ok := j.call(ctx, "safety", system, user, "safety_assessment", schema)
	if !ok {
		return SafetyResult{}, false
	}
	return coerceSafety(obj)
}
