package valueobject

import "fmt"

// DocumentStatus is the outcome of one document upload.
type DocumentStatus struct {
	value string
}

const (
	docStatusPending  = "pending"
	docStatusUploaded = "uploaded"
	docStatusNoFile   = "no_file"
)

var (
	DocumentStatusPending  = DocumentStatus{value: docStatusPending}
	DocumentStatusUploaded = DocumentStatus{value: docStatusUploaded}
	DocumentStatusNoFile   = DocumentStatus{value: docStatusNoFile}
)

var validDocumentStatuses = map[string]DocumentStatus{
	docStatusPending:  DocumentStatusPending,
	docStatusUploaded: DocumentStatusUploaded,
	docStatusNoFile:   DocumentStatusNoFile,
}

// NewDocumentStatus creates a DocumentStatus from a raw string.
func NewDocumentStatus(s string) (DocumentStatus, error) {
	v, ok := validDocumentStatuses[s]
	if !ok {
		return DocumentStatus{}, fmt.Errorf("invalid document status: %q", s)
	}
	return v, nil
}

func (s DocumentStatus) String() string                  { return s.value }
func (s DocumentStatus) IsZero() bool                    { return s.value == "" }
func (s DocumentStatus) Equal(other DocumentStatus) bool { return s.value == other.value }
