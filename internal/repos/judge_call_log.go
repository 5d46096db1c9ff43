package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

type JudgeCallLogRepo interface {
	Create(ctx context.Context, entry *types.JudgeCallLog) error
}

type judgeCallLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJudgeCallLogRepo(db *gorm.DB, baseLog *logger.Logger) JudgeCallLogRepo {
	return &judgeCallLogRepo{db: db, log: baseLog.With("repo", "JudgeCallLogRepo")}
}

func (r *judgeCallLogRepo) Create(ctx context.Context, entry *types.JudgeCallLog) error {
	if entry == nil {
		return nil
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
