package models

// ResumeFile is one uploaded file as received from the transport.
type ResumeFile struct {
	SourceID string
	Filename string
	Data     []byte
}

// ResumeDocument is the extraction result for one ResumeFile. Optional
// contact fields are empty strings when absent.
type ResumeDocument struct {
	SourceID  string `json:"source_id"`
	Filename  string `json:"filename"`
	RawText   string `json:"raw_text"`
	PageCount int    `json:"page_count"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`

	// ExtractionFailed is set when the bytes could not be read as a PDF.
	ExtractionFailed bool `json:"extraction_failed"`
}

// HasText reports whether extraction produced any usable content.
func (d *ResumeDocument) HasText() bool {
	return d != nil && d.RawText != ""
}
