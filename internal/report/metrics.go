// File path: internal/report/metrics.go
package report

// QualityMetrics summarises generated content on five 0-100 heuristic
// scales. These are placeholder scoring functions, not calibrated measures.
type QualityMetrics struct {
	TechnicalDepth  int `json:"technicalDepth"`
	AcademicQuality int `json:"academicQuality"`
	Completeness    int `json:"completeness"`
	Relevance       int `json:"relevance"`
	Overall         int `json:"overall"`
}

// ComplianceResult is the parsed outcome of the compliance-checking stage.
// Computed once per generation; never persisted beyond the response.
type ComplianceResult struct {
	Compliant       bool     `json:"isCompliant"`
	Score           int      `json:"complianceScore"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	QualityScore    int      `json:"qualityScore"`
}
