package audit

// Audit records completed fold requests.
type Audit interface {
	Write(f *FoldData) error
}

// FoldData describes a fold request for the audit trail. Sequences are
// identified by digest and length rather than recorded verbatim.
type FoldData struct {
	RequestID string
	Digest    string
	Length    int
	Timestamp int64
}
