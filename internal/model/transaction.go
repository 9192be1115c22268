package model

import "time"

// TransactionStatus represents the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusDraft     TransactionStatus = "draft"
	StatusValidated TransactionStatus = "validated"
	StatusPosted    TransactionStatus = "posted"
	StatusFailed    TransactionStatus = "failed"
	StatusReversed  TransactionStatus = "reversed"
)

// Transaction is a named collection of entries moving through the
// draft -> validated -> posted lifecycle. Validation only drives the
// draft -> validated (or failed) transition; posting and reversal belong
// to a ledger store.
type Transaction struct {
	ID          string
	Description string
	Reference   string
	Entries     []Entry
	Status      TransactionStatus
	CreatedAt   time.Time
	ValidatedAt time.Time
	PostedAt    time.Time
	ReversedBy  string
}

// MarkValidated applies a validation result: a valid result moves a draft
// to validated, anything else to failed.
func (t *Transaction) MarkValidated(res Result) {
	if res.Valid {
		t.Status = StatusValidated
		t.ValidatedAt = res.Summary.ValidatedAt
		return
	}
	t.Status = StatusFailed
}

// MarkPosted records a successful post to the ledger.
func (t *Transaction) MarkPosted(at time.Time) {
	t.Status = StatusPosted
	t.PostedAt = at
}

// MarkReversed records the reversing transaction's ID.
func (t *Transaction) MarkReversed(byID string) {
	t.Status = StatusReversed
	t.ReversedBy = byID
}
