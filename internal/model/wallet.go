package model

import "time"

// LeadWallet is a partner's prepaid balance debited per accepted lead.
type LeadWallet struct {
	PartnerID string    `json:"partner_id"`
	Balance   Money     `json:"balance"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionKind tells whether a wallet entry added or removed funds.
type TransactionKind string

const (
	TxCredit TransactionKind = "CREDIT"
	TxDebit  TransactionKind = "DEBIT"
)

// WalletTransaction is an immutable ledger entry; every balance change has one.
type WalletTransaction struct {
	ID           string          `json:"id"`
	PartnerID    string          `json:"partner_id"`
	Kind         TransactionKind `json:"kind"`
	Amount       Money           `json:"amount"`
	BalanceAfter Money           `json:"balance_after"`
	Reference    string          `json:"reference"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PaymentStatus is the review state of a wallet top-up request.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentApproved PaymentStatus = "APPROVED"
	PaymentRejected PaymentStatus = "REJECTED"
)

// PaymentRequest is a partner's request to top up the lead wallet, reviewed by an admin.
type PaymentRequest struct {
	ID         string        `json:"id"`
	PartnerID  string        `json:"partner_id"`
	Amount     Money         `json:"amount"`
	Method     string        `json:"method"`
	Reference  string        `json:"reference"`
	Status     PaymentStatus `json:"status"`
	ReviewedBy *string       `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time    `json:"reviewed_at,omitempty"`
	Note       string        `json:"note,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}
