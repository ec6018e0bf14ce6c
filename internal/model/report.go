package model

// HeuristicResult is the outcome of one heuristic evaluation. Severity
// depends only on claimed, expected and the configured bands, so identical
// inputs always reproduce an identical result.
type HeuristicResult struct {
	ID           string   `json:"id"`
	Item         LineItem `json:"item"`
	Status       Status   `json:"status"`
	SkipReason   string   `json:"skip_reason,omitempty"`
	Severity     Severity `json:"severity,omitempty"`
	Expected     float64  `json:"expected"`
	Claimed      float64  `json:"claimed"`
	Excess       float64  `json:"excess"`            // claimed above normative, zero when within
	DeviationPct float64  `json:"deviation_percent"` // relative to expected
	Unit         string   `json:"unit"`
	Rationale    string   `json:"rationale"`
}

// Skipped builds a skipped result for a heuristic whose inputs are missing.
func Skipped(id string, item LineItem, reason string) HeuristicResult {
	return HeuristicResult{ID: id, Item: item, Status: StatusSkipped, SkipReason: reason}
}

// Action is the staff recommendation derived from a verdict
type Action string

const (
	ActionAccept            Action = "ACCEPT"
	ActionAcceptConditional Action = "ACCEPT_CONDITIONAL"
	ActionReview            Action = "REVIEW"
	ActionReviewPriority    Action = "REVIEW_PRIORITY"
	ActionScrutinize        Action = "SCRUTINIZE"
)

// Recommendation pairs the suggested action with its reasoning and any
// follow-up checks staff should run.
type Recommendation struct {
	Action    Action   `json:"action"`
	Reason    string   `json:"reason"`
	Modifiers []string `json:"modifiers,omitempty"`
	NextSteps []string `json:"next_steps,omitempty"`
}

// LineItemVerdict aggregates all heuristic results for one line item.
type LineItemVerdict struct {
	Item           LineItem          `json:"item"`
	Title          string            `json:"title"`
	Status         Status            `json:"status"`
	SkipReason     string            `json:"skip_reason,omitempty"`
	Severity       Severity          `json:"severity,omitempty"`
	Claimed        float64           `json:"claimed"`
	Expected       float64           `json:"expected"`
	Excess         float64           `json:"excess"` // sum of positive heuristic excesses
	Confidence     Confidence        `json:"confidence"`
	Results        []HeuristicResult `json:"results"`
	Recommendation Recommendation    `json:"recommendation"`
}

// OverallReport is the single product of an analysis run. Serialization is
// deterministic: items follow LineItemOrder and no wall-clock fields are
// included, so identical inputs yield byte-identical output.
type OverallReport struct {
	FiscalYear       string            `json:"fiscal_year,omitempty"`
	DocumentType     string            `json:"document_type,omitempty"`
	Pages            int               `json:"pages"`
	ConstantsVersion string            `json:"constants_version"`
	Items            []LineItemVerdict `json:"items"`
	Overall          Severity          `json:"overall_severity"`
	TotalExcess      float64           `json:"total_excess"`
	Unit             string            `json:"unit"`
	Degraded         bool              `json:"degraded"` // any fallback-derived or skipped item
}
