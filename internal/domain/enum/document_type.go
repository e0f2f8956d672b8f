package enum

// DocumentType identifies a numbered document series. Sequence counters are keyed
// by (branch, document type, point of sale), so each type numbers independently.
type DocumentType string

const (
	DocumentTypeInvoice    DocumentType = "invoice"
	DocumentTypeReceipt    DocumentType = "receipt"
	DocumentTypeCreditNote DocumentType = "credit_note"
)

// Prefix returns the short code used when rendering document numbers
func (d DocumentType) Prefix() string {
	switch d {
	case DocumentTypeReceipt:
		return "RCP"
	case DocumentTypeCreditNote:
		return "CRN"
	}
	return "INV"
}

// Valid reports whether d is a known document type
func (d DocumentType) Valid() bool {
	switch d {
	case DocumentTypeInvoice, DocumentTypeReceipt, DocumentTypeCreditNote:
		return true
	}
	return false
}
