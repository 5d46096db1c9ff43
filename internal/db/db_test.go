package db

import (
	"testing"

	"github.com/google/uuid"

	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

// The sqlite driver cannot evaluate function defaults like now() in DDL, so
// the models must not declare any; timestamps are filled by gorm on write.
func TestSQLiteMigrationAndTimestampFill(t *testing.T) {
	svc, err := NewSQLiteMemory(logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("automigrate on sqlite: %v", err)
	}

	rec := &types.DecisionRecord{
		ID:          uuid.New(),
		UniqueKey:   "mig-key",
		ContextHash: "mig-ctx",
		Verdict:     "ACTIONABLE",
		Outcome:     "PROCEED_TO_GENERATE",
	}
	if err := svc.DB().Create(rec).Error; err != nil {
		t.Fatalf("insert decision record: %v", err)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Fatalf("timestamps must be filled on write, got %v %v", rec.CreatedAt, rec.UpdatedAt)
	}

	entry := &types.JudgeCallLog{
		ID:    uuid.New(),
		Judge: "category_router",
		Model: "test-model",
	}
	if err := svc.DB().Create(entry).Error; err != nil {
		t.Fatalf("insert judge call log: %v", err)
	}
	if entry.CreatedAt.IsZero() {
		t.Fatalf("created_at must be filled on write, got %v", entry.CreatedAt)
	}
}
