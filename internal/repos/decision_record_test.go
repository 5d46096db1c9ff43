package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/goalflow-ai/goalflow-backend/internal/db"
	pkgerrors "github.com/goalflow-ai/goalflow-backend/internal/pkg/errors"
	"github.com/goalflow-ai/goalflow-backend/internal/platform/logger"
	"github.com/goalflow-ai/goalflow-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	svc, err := db.NewSQLiteMemory(logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	// The shared in-memory database survives across tests in this process.
	gdb := svc.DB()
	gdb.Exec("DELETE FROM decision_record")
	gdb.Exec("DELETE FROM judge_call_log")
	return gdb
}

func sampleRecord(uniqueKey, contextHash string) *types.DecisionRecord {
	return &types.DecisionRecord{
		ID:               uuid.New(),
		UniqueKey:        uniqueKey,
		ContextHash:      contextHash,
		RawIntent:        "learn guitar",
		NormalizedIntent: "learn guitar",
		IntentLang:       "en",
		Days:             30,
		DaysBucket:       "lte30",
		Gate:             "decision_engine",
		GateResults:      datatypes.JSON(`{}`),
		Verdict:          "ACTIONABLE",
		Outcome:          "PROCEED_TO_GENERATE",
		Payload:          datatypes.JSON(`{"outcome":"PROCEED_TO_GENERATE"}`),
		Fingerprint:      "guitar",
		FingerprintAlgo:  "fp_v2",
		PolicyVersion:    "p1",
		SchemaVersion:    "1",
	}
}

func TestDecisionRecordRepo_UpsertIsIdempotentOnKey(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDecisionRecordRepo(gdb, logger.NewNop())
	ctx := context.Background()

	first := sampleRecord("key-a", "ctx-1")
	if err := repo.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := sampleRecord("key-a", "ctx-1")
	second.ID = first.ID
	second.Outcome = "SHOW_ANGLES"
	second.Verdict = "ACTIONABLE"
	if err := repo.Upsert(ctx, second); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetByKey(ctx, "key-a", "ctx-1")
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if got == nil || got.Outcome != "SHOW_ANGLES" {
		t.Fatalf("expected replaced payload, got %#v", got)
	}

	all, err := repo.List(ctx, DecisionListFilters{}, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row after re-upsert, got %d", len(all))
	}
}

func TestDecisionRecordRepo_GetByKeyMissIsNilNil(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDecisionRecordRepo(gdb, logger.NewNop())

	got, err := repo.GetByKey(context.Background(), "no-such-key", "ctx")
	if err != nil {
		t.Fatalf("miss must not be an error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil record, got %#v", got)
	}
}

func TestDecisionRecordRepo_GetByID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDecisionRecordRepo(gdb, logger.NewNop())
	ctx := context.Background()

	rec := sampleRecord("key-b", "ctx-1")
	if err := repo.Upsert(ctx, rec); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetByID(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.UniqueKey != "key-b" {
		t.Fatalf("unexpected record: %#v", got)
	}

	if _, err := repo.GetByID(ctx, uuid.New()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDecisionRecordRepo_SearchByFingerprint(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDecisionRecordRepo(gdb, logger.NewNop())
	ctx := context.Background()

	match := sampleRecord("key-c", "ctx-1")
	if err := repo.Upsert(ctx, match); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	otherLang := sampleRecord("key-d", "ctx-2")
	otherLang.IntentLang = "fr"
	if err := repo.Upsert(ctx, otherLang); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.SearchByFingerprint(ctx, "guitar", "decision_engine", "en", "lte30", "p1")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].UniqueKey != "key-c" {
		t.Fatalf("expected only the en record, got %#v", got)
	}

	empty, err := repo.SearchByFingerprint(ctx, "", "decision_engine", "en", "lte30", "p1")
	if err != nil || len(empty) != 0 {
		t.Fatalf("empty fingerprint must return nothing, got %v %#v", err, empty)
	}
}

func TestDecisionRecordRepo_ListFilters(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewDecisionRecordRepo(gdb, logger.NewNop())
	ctx := context.Background()

	proceed := sampleRecord("key-e", "ctx-1")
	if err := repo.Upsert(ctx, proceed); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	blocked := sampleRecord("key-f", "ctx-1")
	blocked.Outcome = "BLOCKED_SAFETY"
	blocked.Verdict = "BLOCKED"
	if err := repo.Upsert(ctx, blocked); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.List(ctx, DecisionListFilters{Outcome: "BLOCKED_SAFETY"}, 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Verdict != "BLOCKED" {
		t.Fatalf("expected only the blocked row, got %#v", got)
	}
}
