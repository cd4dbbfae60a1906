package synth

import (
	"errors"
	"fmt"
	"strings"
)

// DefectCategory names one class of synthesis failure. Categories are part
// of the diagnostic contract: operators grep logs for them and tests assert
// on them.
type DefectCategory string

const (
	// DefectMissingStopIdentity is a raw stop record without a usable id.
	DefectMissingStopIdentity DefectCategory = "MissingStopIdentity"
	// DefectMissingRouteIdentity is a raw route record without its
	// direction-independent identity key.
	DefectMissingRouteIdentity DefectCategory = "MissingRouteIdentity"
	// DefectUnmappedDirection is a raw direction value absent from the
	// direction mapping table. Never defaulted; a silently guessed
	// direction produces plausible-looking but wrong trips.
	DefectUnmappedDirection DefectCategory = "UnmappedDirection"
	// DefectShortStopSequence is a directional stop sequence with fewer
	// than two stops.
	DefectShortStopSequence DefectCategory = "ShortStopSequence"
	// DefectCrossModeIDCollision is one identifier claimed by entities of
	// two different modes after the merge.
	DefectCrossModeIDCollision DefectCategory = "CrossModeIDCollision"
	// DefectDuplicateRouteID is a route id surviving deduplication twice.
	DefectDuplicateRouteID DefectCategory = "DuplicateRouteID"
	// DefectDanglingStopReference is a stop time referencing a stop id not
	// present in the stops table.
	DefectDanglingStopReference DefectCategory = "DanglingStopReference"
	// DefectDanglingRouteReference is a trip referencing a route id not
	// present in the routes table.
	DefectDanglingRouteReference DefectCategory = "DanglingRouteReference"
	// DefectIncompleteTripSchedule is a trip whose stop time sequence is
	// missing or not contiguous from index zero.
	DefectIncompleteTripSchedule DefectCategory = "IncompleteTripSchedule"
)

// DefectError is the structured error surfaced by every fatal synthesis
// failure. It carries the category and the offending entity ids so the
// defect is diagnosable without re-running.
type DefectError struct {
	Category  DefectCategory
	EntityIDs []string
	Detail    string
}

func (e *DefectError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Category))
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if len(e.EntityIDs) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(e.EntityIDs, ", "))
		b.WriteString("]")
	}
	return b.String()
}

func newDefect(cat DefectCategory, detail string, ids ...string) *DefectError {
	return &DefectError{Category: cat, Detail: detail, EntityIDs: ids}
}

// IsDefect reports whether err is a DefectError of the given category.
func IsDefect(err error, cat DefectCategory) bool {
	var de *DefectError
	if errors.As(err, &de) {
		return de.Category == cat
	}
	return false
}

func defectf(cat DefectCategory, ids []string, format string, args ...interface{}) *DefectError {
	return &DefectError{Category: cat, Detail: fmt.Sprintf(format, args...), EntityIDs: ids}
}
