package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/google/uuid"
)

// GateDecisionEngine is the pre-category gate every terminal outcome is keyed
// under, so repeated identical raw intents are cheap from the first stage on.
const GateDecisionEngine = "decision_engine"

var recordNamespace = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

// KeyFields is everything that participates in cache-key derivation. Two
// requests with identical fields always produce the same key.
type KeyFields struct {
	NormalizedIntent string  `json:"normalized_intent"`
	IntentLang       string  `json:"intent_lang"`
	Category         *string `json:"category"`
	DaysBucket       string  `json:"days_bucket"`
	Gate             string  `json:"gate"`
	PolicyVersion    string  `json:"policy_version"`
	SchemaVersion    string  `json:"schema_version"`
}

// DeriveKey hashes the full field set into the unique key and the non-intent
// context fields into a short context hash.
func DeriveKey(f KeyFields) (uniqueKey, contextHash string) {
	full, _ := json.Marshal(f)
	sum := sha256.Sum256(full)
	uniqueKey = hex.EncodeToString(sum[:])

	ctxOnly := f
	ctxOnly.NormalizedIntent = ""
	ctxRaw, _ := json.Marshal(ctxOnly)
	ctxSum := sha256.Sum256(ctxRaw)
	contextHash = hex.EncodeToString(ctxSum[:8])
	return uniqueKey, contextHash
}

// RecordID derives the DecisionRecord primary key deterministically from the
// unique key, so recomputation lands on the same row.
func RecordID(uniqueKey string) uuid.UUID {
	return uuid.NewSHA1(recordNamespace, []byte(uniqueKey))
}

func keyFieldsFor(pre Preprocessed, gate string, category *string) KeyFields {
	return KeyFields{
		NormalizedIntent: pre.NormalizedIntent,
		IntentLang:       pre.IntentLang,
		Category:         category,
		DaysBucket:       pre.DaysBucket,
		Gate:             gate,
		PolicyVersion:    pre.PolicyVersion,
		SchemaVersion:    pre.SchemaVersion,
	}
}
