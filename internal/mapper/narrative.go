package mapper

import (
	"regexp"
	"strings"

	"github.com/regulint/trueup/internal/model"
)

// reasonCues are phrases that introduce a variance justification in the
// narrative text around a line item's table.
var reasonCues = []string{
	"due to",
	"on account of",
	"owing to",
	"attributable to",
	"as a result of",
	"consequent to",
}

var forceMajeureCues = []string{
	"force majeure",
	"flood",
	"cyclone",
	"natural calamity",
	"covid",
	"pandemic",
}

var (
	docRef        = regexp.MustCompile(`(?i)\b(annexure\s*[-–]?\s*[A-Z0-9]+|audited accounts?|auditor'?s report|board resolution)\b`)
	regulationRef = regexp.MustCompile(`(?i)\bregulation\s+\d+(?:\s*\(\d+\))?\b`)
	sentenceEnd   = regexp.MustCompile(`[.;]\s`)
)

// ParseNarrative scans the section text surrounding a line item for the
// filing's own explanation of the variance. Absence of narrative is normal
// and returns nil.
func ParseNarrative(text string) *model.VarianceExplanation {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	lower := strings.ToLower(text)

	var exp model.VarianceExplanation
	for _, sentence := range sentenceEnd.Split(text, -1) {
		s := strings.ToLower(sentence)
		for _, cue := range reasonCues {
			if idx := strings.Index(s, cue); idx >= 0 {
				reason := strings.TrimSpace(sentence[idx:])
				if len(reason) > 200 {
					reason = reason[:200]
				}
				exp.Reasons = append(exp.Reasons, reason)
				break
			}
		}
	}
	for _, cue := range forceMajeureCues {
		if strings.Contains(lower, cue) {
			exp.ForceMajeure = true
			break
		}
	}
	for _, m := range docRef.FindAllString(text, -1) {
		exp.SupportingDocs = appendUnique(exp.SupportingDocs, m)
	}
	for _, m := range regulationRef.FindAllString(text, -1) {
		exp.RegulatoryRefs = appendUnique(exp.RegulatoryRefs, m)
	}

	if len(exp.Reasons) == 0 && !exp.ForceMajeure && len(exp.SupportingDocs) == 0 && len(exp.RegulatoryRefs) == 0 {
		return nil
	}
	return &exp
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if strings.EqualFold(existing, s) {
			return list
		}
	}
	return append(list, s)
}
