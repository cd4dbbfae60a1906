package validation

import (
	"encoding/json"
	"os"
)

// Severity tiers used by the canonical validator's report.
const (
	SeverityError   = "ERROR"
	SeverityWarning = "WARNING"
	SeverityInfo    = "INFO"
)

// Notice is one aggregated finding in the validator report.
type Notice struct {
	Code          string          `json:"code"`
	Severity      string          `json:"severity"`
	TotalNotices  int             `json:"totalNotices"`
	SampleNotices json.RawMessage `json:"sampleNotices"`
}

// Report is the structured validation report document.
type Report struct {
	Notices []Notice `json:"notices"`
}

// LoadReport reads a report.json document.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Verdict is the authoritative pass/fail classification of a run.
type Verdict int

const (
	// VerdictPass means no findings at all.
	VerdictPass Verdict = iota
	// VerdictWarn means findings exist but none at the error tier.
	VerdictWarn
	// VerdictFail means at least one error-tier finding, regardless of
	// how many lower-tier findings accompany it.
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictPass:
		return "PASS"
	case VerdictWarn:
		return "WARN"
	case VerdictFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Classify maps a report onto a verdict. A single error-severity notice
// forces FAIL; any other notice produces WARN; an empty report is PASS.
func Classify(r *Report) Verdict {
	verdict := VerdictPass
	for _, n := range r.Notices {
		if n.Severity == SeverityError {
			return VerdictFail
		}
		if verdict == VerdictPass {
			verdict = VerdictWarn
		}
	}
	return verdict
}
