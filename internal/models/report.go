package models

type ShortlistReport struct {
	RunID                 string                 `json:"run_id"`
	Entries               []*CandidateEvaluation `json:"entries"`
	ThresholdApplied      float64                `json:"threshold_applied"`
	Filtered              bool                   `json:"filtered"`
	TotalProcessed        int                    `json:"total_processed"`
	TotalFailed           int                    `json:"total_failed"`
	TotalExtractionFailed int                    `json:"total_extraction_failed"`
	AboveThreshold        int                    `json:"above_threshold"`
	AverageScore          float64                `json:"average_score"`
}

// ShortlistResponse is the body returned by POST /shortlist-resumes/.
type ShortlistResponse struct {
	FinalReport string           `json:"final_report"`
	Report      *ShortlistReport `json:"report"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
	Code   int    `json:"code"`
}
