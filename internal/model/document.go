package model

import "time"

// DocumentType classifies an uploaded shipping document.
type DocumentType string

const (
	DocMSDS    DocumentType = "MSDS"
	DocCOA     DocumentType = "COA"
	DocInvoice DocumentType = "INVOICE"
	DocBOL     DocumentType = "BOL"
	DocOther   DocumentType = "OTHER"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocMSDS, DocCOA, DocInvoice, DocBOL, DocOther:
		return true
	}
	return false
}

// Document represents a stored file in the system.
// Size is the plaintext size; the stored object is encrypted when Encrypted is set.
type Document struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"owner_id"`
	QuoteID     *string      `json:"quote_id,omitempty"`
	ShipmentID  *string      `json:"shipment_id,omitempty"`
	DocType     DocumentType `json:"doc_type"`
	Filename    string       `json:"filename"`
	StoragePath string       `json:"storage_path"`
	Size        int64        `json:"size"`
	ContentType string       `json:"content_type"`
	Encrypted   bool         `json:"encrypted"`
	CreatedAt   time.Time    `json:"created_at"`
}
