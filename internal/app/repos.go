package app

import (
	"gorm.io/gorm"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/repos"
)

type Repos struct {
	Decision     repos.DecisionRecordRepo
	JudgeCallLog repos.JudgeCallLogRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Decision:     repos.NewDecisionRecordRepo(db, log),
		JudgeCallLog: repos.NewJudgeCallLogRepo(db, log),
	}
}
