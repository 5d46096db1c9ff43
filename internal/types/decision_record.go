package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DecisionRecord is the only durable state the decision engine owns. One row
// per derived cache key; recomputation upserts, never duplicates.
type DecisionRecord struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	UniqueKey   string `gorm:"column:unique_key;not null;index:idx_decision_key,unique,priority:1" json:"unique_key"`
	ContextHash string `gorm:"column:context_hash;not null;index:idx_decision_key,unique,priority:2" json:"context_hash"`

	RawIntent        string `gorm:"column:raw_intent;not null" json:"raw_intent"`
	NormalizedIntent string `gorm:"column:normalized_intent;not null;index" json:"normalized_intent"`

	IntentLang string `gorm:"column:intent_lang;not null;index:idx_decision_scan,priority:1" json:"intent_lang"`
	Locale     string `gorm:"column:locale" json:"locale"`
	Days       int    `gorm:"column:days;not null" json:"days"`
	DaysBucket string `gorm:"column:days_bucket;not null;index" json:"days_bucket"`

	// Gate is the pipeline stage the key was derived for (pre-category keys
	// use the decision-engine gate).
	Gate     string  `gorm:"column:gate;not null;index:idx_decision_scan,priority:2" json:"gate"`
	Category *string `gorm:"column:category;index" json:"category,omitempty"`

	GateResults datatypes.JSON `gorm:"type:jsonb;column:gate_results" json:"gate_results"`
	Verdict     string         `gorm:"column:verdict;not null;index" json:"verdict"`

	Outcome string         `gorm:"column:outcome;not null;index" json:"outcome"`
	Payload datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload"`

	Fingerprint     string `gorm:"column:fingerprint;index" json:"fingerprint"`
	FingerprintAlgo string `gorm:"column:fingerprint_algo" json:"fingerprint_algo"`

	PolicyVersion string `gorm:"column:policy_version;not null;index" json:"policy_version"`
	SchemaVersion string `gorm:"column:schema_version;not null" json:"schema_version"`

	// No column defaults: sqlite cannot evaluate now(). gorm fills these on
	// write and Upsert sets them explicitly.
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (DecisionRecord) TableName() string { return "decision_record" }
