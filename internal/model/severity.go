package model

// Severity is the traffic-light verdict for a heuristic or line item
type Severity string

const (
	SeverityGreen  Severity = "GREEN"  // Within tolerance
	SeverityYellow Severity = "YELLOW" // Moderate deviation, flagged for review
	SeverityRed    Severity = "RED"    // Significant deviation, likely excess claim
)

// rank orders severities for worst-case aggregation (RED > YELLOW > GREEN)
func (s Severity) rank() int {
	switch s {
	case SeverityRed:
		return 2
	case SeverityYellow:
		return 1
	default:
		return 0
	}
}

// Worse returns the more severe of the two
func (s Severity) Worse(other Severity) Severity {
	if other.rank() > s.rank() {
		return other
	}
	return s
}

// Confidence marks how a record's values were obtained
type Confidence string

const (
	ConfidenceExact    Confidence = "exact"            // Extracted directly from the primary table
	ConfidenceFallback Confidence = "fallback-derived" // Obtained through a documented substitution
)

// Status distinguishes computed results from ones that could not run
type Status string

const (
	StatusComputed Status = "computed"
	StatusSkipped  Status = "skipped"
)

// Bands holds the tolerance thresholds, in percent deviation, that map a
// claimed-vs-expected deviation to a severity. Deviations are compared by
// absolute value: |dev| <= Green -> GREEN, <= Yellow -> YELLOW, else RED.
type Bands struct {
	Green  float64 `json:"green" yaml:"green"`
	Yellow float64 `json:"yellow" yaml:"yellow"`
}

// Classify maps a percent deviation to a severity. Pure: the same inputs
// always produce the same verdict.
func (b Bands) Classify(deviationPct float64) Severity {
	abs := deviationPct
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs <= b.Green:
		return SeverityGreen
	case abs <= b.Yellow:
		return SeverityYellow
	default:
		return SeverityRed
	}
}

// DefaultBands is the uniform tolerance band applied unless a heuristic's
// regulatory basis mandates a different one.
func DefaultBands() Bands {
	return Bands{Green: 2.0, Yellow: 10.0}
}
