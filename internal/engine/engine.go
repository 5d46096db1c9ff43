// Package engine decides whether the expensive downstream plan generator
// should run for a given intent, be skipped for a cheaper response, or be
// deferred pending more information. One ordered, short-circuiting pass:
// caches first, deterministic gates next, judges only when those are
// inconclusive. Every terminal outcome is persisted.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"

	redisclient "github.com/goalflow-ai/goalflow-backend/internal/clients/redis"
	"github.com/goalflow-ai/goalflow-backend/internal/engine/gates"
	"github.com/goalflow-ai/goalflow-backend/internal/engine/judges"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/repos"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

const (
	toneActThreshold         = 0.85
	categoryRouteMinConf     = 0.5
	equivalenceMinConfidence = 0.7
	similarityCandidateLimit = 200
)

// Deps wires the orchestrator. Store, Judges, Gates and Log are required;
// the rest default sensibly.
type Deps struct {
	Store      repos.DecisionRecordRepo
	HotCache   redisclient.DecisionCache
	Judges     judges.Judges
	Gates      *gates.Set
	Freshness  FreshnessTable
	Categories map[string]CategoryConfig
	Band       SimilarityBand
	Log        *logger.Logger

	PolicyVersion string
	Now           func() time.Time
}

type Engine struct {
	deps   Deps
	tracer trace.Tracer
}

func New(deps Deps) (*Engine, error) {
	if deps.Store == nil || deps.Judges == nil || deps.Gates == nil || deps.Log == nil {
		return nil, fmt.Errorf("engine: missing deps")
	}
	if deps.Freshness == nil {
		deps.Freshness = DefaultFreshness()
	}
	if deps.Categories == nil {
		deps.Categories = DefaultCategories()
	}
	if deps.Band.High <= deps.Band.Low || deps.Band.High == 0 {
		deps.Band = DefaultSimilarityBand()
	}
	if deps.PolicyVersion == "" {
		deps.PolicyVersion = "p1"
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	deps.Log = deps.Log.With("service", "DecisionEngine")
	return &Engine{
		deps:   deps,
		tracer: otel.Tracer("goalflow/engine"),
	}, nil
}

type evalState struct {
	in        Intent
	pre       Preprocessed
	fp        Fingerprint
	uniqueKey string
	ctxHash   string
	category  string
	gateMap   map[string]gates.Result
	trace     Trace
}

// Evaluate runs the full pipeline for one intent. It always reaches exactly
// one of the eight outcomes unless the context is cancelled.
func (e *Engine) Evaluate(ctx context.Context, in Intent) (*Output, error) {
	ctx, span := e.tracer.Start(ctx, "engine.evaluate")
	defer span.End()

	out, err := e.evaluate(ctx, in)
	if err != nil {
		span.SetAttributes(attribute.String("engine.error", err.Error()))
		return nil, err
	}
	span.SetAttributes(
		attribute.String("engine.outcome", string(out.Outcome)),
		attribute.String("engine.branch", out.Trace.Branch),
	)
	return out, nil
}

func (e *Engine) evaluate(ctx context.Context, in Intent) (*Output, error) {
	pre := Preprocess(in, e.deps.PolicyVersion)
	st := &evalState{
		in:      in,
		pre:     pre,
		gateMap: map[string]gates.Result{},
	}
	st.uniqueKey, st.ctxHash = DeriveKey(keyFieldsFor(pre, GateDecisionEngine, nil))
	st.fp = ComputeFingerprint(pre.NormalizedIntent, pre.IntentLang, "")

	if pre.NormalizedIntent == "" {
		st.trace.Branch = "empty_input"
		return e.finalize(ctx, st, OutcomeAskClarification, func(o *Output) {
			o.Reason = "empty_intent"
		}), nil
	}

	// Safety is checked against the current raw input before anything else,
	// including cache lookups: a previously "safe" verdict under the same
	// key must never override a hard block.
	safetyRes := e.deps.Gates.CheckSafety(in.Text)
	st.gateMap[GateSafety] = safetyRes
	if safetyRes.Status == gates.SafetyBlock {
		st.trace.Branch = "safety_hard"
		return e.finalize(ctx, st, OutcomeBlockedSafety, func(o *Output) {
			o.Reason = safetyRes.Reason
		}), nil
	}

	audienceRes := e.deps.Gates.CheckAudience(in.Text)
	st.gateMap[GateAudience] = audienceRes
	if audienceRes.Status == gates.AudienceBlock || audienceRes.Status == gates.AudienceRestricted {
		st.trace.Branch = "audience"
		return e.finalize(ctx, st, OutcomeBlockedSafety, func(o *Output) {
			o.Reason = audienceRes.Reason
		}), nil
	}

	if out, ok := e.tryExactCache(ctx, st); ok {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if out, ok := e.tryFingerprintCache(ctx, st); ok {
		return out, nil
	}
	if out, ok := e.trySimilarityCache(ctx, st); ok {
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic signals were inconclusive on safety; one judge look.
	if safetyRes.Status == gates.SafetyUncertain || audienceRes.Status == gates.AudienceDefer {
		st.trace.JudgeCalls = append(st.trace.JudgeCalls, "safety")
		if res, ok := e.deps.Judges.AssessSafety(ctx, st.pre.NormalizedIntent); ok {
			// The deterministic tier may have had nothing to say (audience
			// defer with a clean safety pass); the reason code must still
			// come from the closed enum.
			reason := safetyRes.Reason
			if reason == "" {
				reason = audienceRes.Reason
			}
			if reason == "" {
				reason = gates.ReasonJudgeRiskHigh
			}
			st.gateMap[GateSafety] = gates.Result{
				Gate: GateSafety, Status: res.Risk, Reason: reason,
				Confidence: 0.9, Rationale: res.Reason,
			}
			if res.Risk == "high" {
				st.trace.Branch = "safety_judge"
				return e.finalize(ctx, st, OutcomeBlockedSafety, func(o *Output) {
					o.Reason = reason
				}), nil
			}
		}
		// No signal: fall through. The deterministic tier did not hard-match.
	}

	toneRes := e.deps.Gates.CheckTone(st.pre.NormalizedIntent, st.pre.IntentLang)
	st.gateMap[GateTone] = toneRes
	if (toneRes.Status == gates.TonePlayful || toneRes.Status == gates.ToneNonsense) &&
		toneRes.Confidence >= toneActThreshold {
		st.trace.Branch = "tone"
		return e.finalize(ctx, st, OutcomePlayfulOrNonsense, func(o *Output) {
			o.Reason = toneRes.Reason
		}), nil
	}

	info := judges.IntentInfo{
		NormalizedIntent: st.pre.NormalizedIntent,
		IntentLang:       st.pre.IntentLang,
		Locale:           in.Locale,
		Days:             st.pre.Days,
	}

	st.trace.JudgeCalls = append(st.trace.JudgeCalls, "category_router")
	if catRes, ok := e.deps.Judges.RouteCategory(ctx, info); ok && catRes.Confidence >= categoryRouteMinConf {
		st.category = catRes.Category
		st.gateMap[GateCategory] = gates.Result{
			Gate: GateCategory, Status: catRes.Category,
			Confidence: catRes.Confidence, Rationale: catRes.Rationale,
		}
	} else {
		st.category = e.fallbackCategory(st)
	}
	if st.category == "" {
		st.trace.Branch = "category_unresolved"
		return e.finalize(ctx, st, OutcomeAskUserChooseCategory, func(o *Output) {
			o.Reason = "category_unresolved"
			o.CategoryOptions = CategoryNames()
		}), nil
	}
	cfg := e.deps.Categories[st.category]

	// AngleFirst categories skip the blocking confirmation: their angle
	// support path is strictly friendlier.
	if !cfg.AngleFirst {
		ambRes := e.deps.Gates.CheckAmbition(st.pre.NormalizedIntent, st.pre.IntentLang)
		st.gateMap[GateAmbition] = ambRes
		if ambRes.Status == gates.AmbitionConfirm {
			st.trace.Branch = "ambition"
			return e.finalize(ctx, st, OutcomeConfirmAmbition, func(o *Output) {
				o.Reason = ambRes.Reason
			}), nil
		}
	}

	st.trace.JudgeCalls = append(st.trace.JudgeCalls, "category_analysis")
	if analysis, ok := e.deps.Judges.AnalyzeCategory(ctx, info, st.category); ok {
		st.gateMap[GateAnalysis] = gates.Result{
			Gate: GateAnalysis, Status: analysis.Verdict, Confidence: 0.9,
		}
		// A clear intent skips the redundant alternative framings entirely.
		if !analysis.Clear {
			if analysis.Verdict == "needs_clarify" && analysis.ClarifyQuestion != "" {
				st.trace.Branch = "analysis_clarify"
				return e.finalize(ctx, st, OutcomeAskClarification, func(o *Output) {
					o.Reason = "needs_clarify"
					o.ClarifyQuestion = analysis.ClarifyQuestion
				}), nil
			}
			angles := analysis.Angles
			if len(angles) == 0 {
				angles = DefaultAngles(st.category, in.Locale, st.pre.NormalizedIntent, st.pre.Days, st.pre.IntentLang)
			}
			st.trace.Branch = "analysis_angles"
			return e.finalize(ctx, st, OutcomeShowAngles, func(o *Output) {
				o.Reason = "alternative_framings"
				o.Angles = angles
			}), nil
		}
	}

	ctrlRes := e.deps.Gates.CheckControllability(st.pre.NormalizedIntent, st.pre.IntentLang)
	st.gateMap[GateControllability] = ctrlRes
	if ctrlRes.Status == gates.ControlLow {
		st.trace.Branch = "controllability"
		return e.finalize(ctx, st, OutcomeShowAngles, func(o *Output) {
			o.Reason = ctrlRes.Reason
			o.Angles = DefaultAngles(st.category, in.Locale, st.pre.NormalizedIntent, st.pre.Days, st.pre.IntentLang)
		}), nil
	}

	if cfg.RequiresFeasibility {
		st.trace.JudgeCalls = append(st.trace.JudgeCalls, "realism")
		if res, ok := e.deps.Judges.AssessRealism(ctx, info, st.category); ok {
			st.gateMap[GateRealism] = gates.Result{
				Gate: GateRealism, Status: res.Realism, Confidence: 0.9, Rationale: res.WhyShort,
			}
			if res.Realism != "ok" {
				st.trace.Branch = "realism"
				return e.finalize(ctx, st, OutcomeRealismAdjust, func(o *Output) {
					o.Reason = "feasibility_" + res.Realism
					o.Realism = &RealismInfo{
						Level:       res.Realism,
						WhyShort:    res.WhyShort,
						Adjustments: res.Adjustments,
					}
				}), nil
			}
		}
	}

	st.trace.Branch = "proceed"
	return e.finalize(ctx, st, OutcomeProceedToGenerate, nil), nil
}

// fallbackCategory routes deterministically when the judge had no signal.
func (e *Engine) fallbackCategory(st *evalState) string {
	ctrl := e.deps.Gates.CheckControllability(st.pre.NormalizedIntent, st.pre.IntentLang)
	if ctrl.Status == gates.ControlLow && ctrl.Reason == gates.ReasonOtherPerson {
		return CategoryWellbeing
	}
	amb := e.deps.Gates.CheckAmbition(st.pre.NormalizedIntent, st.pre.IntentLang)
	if amb.Reason == gates.ReasonLearningVerb {
		return CategoryLearnSkill
	}
	return ""
}

func (e *Engine) tryExactCache(ctx context.Context, st *evalState) (*Output, bool) {
	var rec *types.DecisionRecord
	if e.deps.HotCache != nil {
		if hot, ok := e.deps.HotCache.Get(ctx, st.uniqueKey, st.ctxHash); ok {
			rec = hot
		}
	}
	if rec == nil {
		stored, err := e.deps.Store.GetByKey(ctx, st.uniqueKey, st.ctxHash)
		if err != nil {
			e.deps.Log.Warn("exact cache lookup failed (continuing)", "error", err)
			return nil, false
		}
		rec = stored
	}
	if rec == nil || !e.recordFresh(rec) {
		return nil, false
	}
	out := e.outputFromRecord(rec, st)
	if out == nil {
		return nil, false
	}
	out.Trace.ExactCacheHit = true
	out.Trace.Branch = "cache_exact"
	if e.deps.HotCache != nil {
		ttl := e.deps.Freshness.Window(gateForOutcome(out.Outcome), out.Verdict)
		e.deps.HotCache.Set(ctx, rec, ttl)
	}
	return out, true
}

func (e *Engine) tryFingerprintCache(ctx context.Context, st *evalState) (*Output, bool) {
	if st.fp.FP == "" {
		return nil, false
	}
	recs, err := e.deps.Store.SearchByFingerprint(ctx, st.fp.FP, GateDecisionEngine,
		st.pre.IntentLang, st.pre.DaysBucket, st.pre.PolicyVersion)
	if err != nil {
		e.deps.Log.Warn("fingerprint cache lookup failed (continuing)", "error", err)
		return nil, false
	}
	for _, rec := range recs {
		if rec.UniqueKey == st.uniqueKey || !e.recordFresh(rec) {
			continue
		}
		out := e.outputFromRecord(rec, st)
		if out == nil {
			continue
		}
		out.Trace.FingerprintCacheHit = true
		out.Trace.Branch = "cache_fingerprint"
		// Persist under this intent's own key so the next identical request
		// hits the exact tier.
		e.persist(ctx, st, out)
		return out, true
	}
	return nil, false
}

func (e *Engine) trySimilarityCache(ctx context.Context, st *evalState) (*Output, bool) {
	if !EligibleForSimilarity(st.pre.NormalizedIntent, st.pre.IntentLang) {
		return nil, false
	}
	cands, err := e.deps.Store.SearchSimilarityCandidates(ctx, st.pre.IntentLang,
		GateDecisionEngine, st.pre.PolicyVersion, similarityCandidateLimit)
	if err != nil {
		e.deps.Log.Warn("similarity candidate scan failed (continuing)", "error", err)
		return nil, false
	}

	band := e.deps.Band
	var best *types.DecisionRecord
	var bestScore float64
	for _, cand := range cands {
		if cand.UniqueKey == st.uniqueKey || !e.recordFresh(cand) {
			continue
		}
		score := TrigramJaccard(st.pre.NormalizedIntent, cand.NormalizedIntent, st.pre.IntentLang)
		// Above the band the exact/fingerprint tiers own the match; below it
		// the intents are assumed unrelated. Only the band pays judge cost.
		if score < band.Low || score >= band.High {
			continue
		}
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if best == nil {
		return nil, false
	}

	// Lexical overlap inside the band is necessary but not sufficient; the
	// equivalence judge arbitrates. Unconfirmed matches are discarded.
	st.trace.JudgeCalls = append(st.trace.JudgeCalls, "equivalence")
	eq, ok := e.deps.Judges.JudgeEquivalence(ctx, st.pre.IntentLang,
		st.pre.NormalizedIntent, best.NormalizedIntent)
	if !ok || !eq.SameRequest || eq.Confidence < equivalenceMinConfidence {
		return nil, false
	}
	out := e.outputFromRecord(best, st)
	if out == nil {
		return nil, false
	}
	out.Trace.SimilarityCacheHit = true
	out.Trace.SimilarityConfidence = bestScore
	out.Trace.Branch = "cache_similarity"
	e.persist(ctx, st, out)
	return out, true
}

func (e *Engine) recordFresh(rec *types.DecisionRecord) bool {
	return e.deps.Freshness.Fresh(Outcome(rec.Outcome), Verdict(rec.Verdict), rec.UpdatedAt, e.deps.Now())
}

// outputFromRecord rebuilds the engine output embedded in a stored record.
// Unparseable payloads are treated as cache misses, not errors.
func (e *Engine) outputFromRecord(rec *types.DecisionRecord, st *evalState) *Output {
	var out Output
	if len(rec.Payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(rec.Payload, &out); err != nil || out.Outcome == "" {
		return nil
	}
	cached := out.Trace
	out.Trace = st.trace
	out.Trace.Category = cached.Category
	if out.Category != nil {
		out.Trace.Category = *out.Category
	}
	return &out
}

func (e *Engine) finalize(ctx context.Context, st *evalState, outcome Outcome, mutate func(*Output)) *Output {
	out := &Output{
		Outcome: outcome,
		Verdict: verdictFor(outcome),
		Trace:   st.trace,
	}
	if st.category != "" {
		cat := st.category
		out.Category = &cat
		out.Trace.Category = cat
	}
	if mutate != nil {
		mutate(out)
	}
	e.persist(ctx, st, out)
	return out
}

// persist writes the decision under the pre-category key. Best-effort: a
// failed write is logged and swallowed, the decision is still returned. A
// cancelled pipeline skips persistence rather than store a partial record.
func (e *Engine) persist(ctx context.Context, st *evalState, out *Output) {
	if ctx.Err() != nil {
		e.deps.Log.Debug("skipping persistence, context done", "key", st.uniqueKey)
		return
	}
	payload, err := json.Marshal(out)
	if err != nil {
		e.deps.Log.Warn("decision payload marshal failed", "error", err)
		return
	}
	gm, err := json.Marshal(st.gateMap)
	if err != nil {
		gm = []byte("{}")
	}
	rec := &types.DecisionRecord{
		ID:               RecordID(st.uniqueKey),
		UniqueKey:        st.uniqueKey,
		ContextHash:      st.ctxHash,
		RawIntent:        st.in.Text,
		NormalizedIntent: st.pre.NormalizedIntent,
		IntentLang:       st.pre.IntentLang,
		Locale:           st.in.Locale,
		Days:             st.pre.Days,
		DaysBucket:       st.pre.DaysBucket,
		Gate:             GateDecisionEngine,
		Category:         out.Category,
		GateResults:      datatypes.JSON(gm),
		Verdict:          string(out.Verdict),
		Outcome:          string(out.Outcome),
		Payload:          datatypes.JSON(payload),
		Fingerprint:      st.fp.FP,
		FingerprintAlgo:  st.fp.Algo,
		PolicyVersion:    st.pre.PolicyVersion,
		SchemaVersion:    st.pre.SchemaVersion,
	}
	if err := e.deps.Store.Upsert(ctx, rec); err != nil {
		e.deps.Log.Warn("decision persist failed (continuing)", "error", err, "key", st.uniqueKey)
		return
	}
	if e.deps.HotCache != nil {
		ttl := e.deps.Freshness.Window(gateForOutcome(out.Outcome), out.Verdict)
		e.deps.HotCache.Set(ctx, rec, ttl)
	}
}
