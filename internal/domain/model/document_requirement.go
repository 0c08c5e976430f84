package model

import "github.com/bibbank/origination/internal/domain/valueobject"

// DocumentRequirement describes one document the applicant must supply.
type DocumentRequirement struct {
	Key    string
	Label  string
	Accept string // comma-separated MIME patterns
}

// IdentityDocumentKey is the key of the document every applicant supplies.
const IdentityDocumentKey = "ID_PROOF"

// IdentityDocument is always first in every checklist.
var IdentityDocument = DocumentRequirement{
	Key:    IdentityDocumentKey,
	Label:  "Government ID (PAN / Aadhaar)",
	Accept: "image/*,application/pdf",
}

// UploadedDocument is a supplied file for a requirement key.
type UploadedDocument struct {
	Key         string
	FileName    string
	ContentType string
	Size        int64
}

// DocumentUploadResult is the per-key outcome after an upload batch.
type DocumentUploadResult struct {
	Key      string
	FileName string
	Status   valueobject.DocumentStatus
}
