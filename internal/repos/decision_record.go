package repos

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	pkgerrors "github.com/goalflow-ai/goalflow-backend/internal/pkg/errors"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

// DecisionListFilters narrows List scans. Zero values mean "any".
type DecisionListFilters struct {
	IntentLang string
	Gate       string
	Outcome    string
	Category   string
	Verdict    string
}

// DecisionRecordRepo is the decision store contract. Freshness is not a store
// concern; callers filter by age.
type DecisionRecordRepo interface {
	GetByKey(ctx context.Context, uniqueKey, contextHash string) (*types.DecisionRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*types.DecisionRecord, error)
	SearchByFingerprint(ctx context.Context, fp, gate, lang, daysBucket, policyVersion string) ([]*types.DecisionRecord, error)
	SearchSimilarityCandidates(ctx context.Context, lang, gate, policyVersion string, limit int) ([]*types.DecisionRecord, error)
	Upsert(ctx context.Context, rec *types.DecisionRecord) error
	List(ctx context.Context, filters DecisionListFilters, limit, offset int) ([]*types.DecisionRecord, error)
}

type decisionRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDecisionRecordRepo(db *gorm.DB, baseLog *logger.Logger) DecisionRecordRepo {
	return &decisionRecordRepo{
		db:  db,
		log: baseLog.With("repo", "DecisionRecordRepo"),
	}
}

func (r *decisionRecordRepo) GetByKey(ctx context.Context, uniqueKey, contextHash string) (*types.DecisionRecord, error) {
	if strings.TrimSpace(uniqueKey) == "" {
		return nil, pkgerrors.ErrInvalidArgument
	}
	var rec types.DecisionRecord
	err := r.db.WithContext(ctx).
		Where("unique_key = ? AND context_hash = ?", uniqueKey, contextHash).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *decisionRecordRepo) GetByID(ctx context.Context, id uuid.UUID) (*types.DecisionRecord, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.ErrInvalidArgument
	}
	var rec types.DecisionRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *decisionRecordRepo) SearchByFingerprint(ctx context.Context, fp, gate, lang, daysBucket, policyVersion string) ([]*types.DecisionRecord, error) {
	var out []*types.DecisionRecord
	if strings.TrimSpace(fp) == "" {
		return out, nil
	}
	err := r.db.WithContext(ctx).
		Where("fingerprint = ? AND gate = ? AND intent_lang = ? AND days_bucket = ? AND policy_version = ?",
			fp, gate, lang, daysBucket, policyVersion).
		Order("updated_at DESC").
		Limit(10).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *decisionRecordRepo) SearchSimilarityCandidates(ctx context.Context, lang, gate, policyVersion string, limit int) ([]*types.DecisionRecord, error) {
	if limit <= 0 {
		limit = 200
	}
	var out []*types.DecisionRecord
	err := r.db.WithContext(ctx).
		Where("intent_lang = ? AND gate = ? AND policy_version = ?", lang, gate, policyVersion).
		Order("updated_at DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Upsert is idempotent on (unique_key, context_hash): a second write for the
// same derived key replaces the stored payload and advances updated_at.
func (r *decisionRecordRepo) Upsert(ctx context.Context, rec *types.DecisionRecord) error {
	if rec == nil || strings.TrimSpace(rec.UniqueKey) == "" {
		return pkgerrors.ErrInvalidArgument
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "unique_key"}, {Name: "context_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"raw_intent",
				"normalized_intent",
				"intent_lang",
				"locale",
				"days",
				"days_bucket",
				"gate",
				"category",
				"gate_results",
				"verdict",
				"outcome",
				"payload",
				"fingerprint",
				"fingerprint_algo",
				"policy_version",
				"schema_version",
				"updated_at",
			}),
		}).
		Create(rec).Error
}

func (r *decisionRecordRepo) List(ctx context.Context, filters DecisionListFilters, limit, offset int) ([]*types.DecisionRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Model(&types.DecisionRecord{})
	if filters.IntentLang != "" {
		q = q.Where("intent_lang = ?", filters.IntentLang)
	}
	if filters.Gate != "" {
		q = q.Where("gate = ?", filters.Gate)
	}
	if filters.Outcome != "" {
		q = q.Where("outcome = ?", filters.Outcome)
	}
	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.Verdict != "" {
		q = q.Where("verdict = ?", filters.Verdict)
	}
	var out []*types.DecisionRecord
	if err := q.Order("updated_at DESC").Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
