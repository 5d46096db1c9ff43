package types

import (
	"time"

	"github.com/google/uuid"
)

// JudgeCallLog records every external judge invocation, including failures,
// for audit and cost tracking. Inserts are best-effort.
type JudgeCallLog struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	DecisionRecordID *uuid.UUID `gorm:"type:uuid;index" json:"decision_record_id,omitempty"`
	Judge            string     `gorm:"column:judge;not null;index" json:"judge"`
	Model            string     `gorm:"column:model;not null" json:"model"`
	Prompt           string     `gorm:"column:prompt" json:"prompt"`
	Response         string     `gorm:"column:response" json:"response"`
	Success          bool       `gorm:"column:success;not null" json:"success"`
	Error            string     `gorm:"column:error" json:"error"`
	LatencyMS        int64      `gorm:"column:latency_ms;not null" json:"latency_ms"`
	CreatedAt        time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (JudgeCallLog) TableName() string { return "judge_call_log" }
