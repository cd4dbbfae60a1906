package synth

import (
	"github.com/ph-dataviz/gtfs-sg/gtfs"
)

// Mode distinguishes the two independently-sourced transit networks merged
// into one feed.
type Mode int

const (
	// ModeBus is road-based transit sourced from the DataMall API.
	ModeBus Mode = iota
	// ModeRail is rail-based transit sourced from static network files.
	ModeRail
)

func (m Mode) String() string {
	switch m {
	case ModeBus:
		return "bus"
	case ModeRail:
		return "rail"
	default:
		return "unknown"
	}
}

// RouteType maps the mode onto the GTFS route type emitted in routes.txt.
func (m Mode) RouteType() gtfs.RouteType {
	if m == ModeRail {
		return gtfs.RouteTypeSubway
	}
	return gtfs.RouteTypeBus
}

// scoped returns the mode-namespaced form of an id. Output tables carry flat
// ids, but all internal lookups are namespaced so a cross-mode collision is
// detected structurally rather than by accident of the input data.
func (m Mode) scoped(id string) string {
	return m.String() + ":" + id
}

// RawStop is one stop record as handed over by a source collaborator.
type RawStop struct {
	ID          string
	Name        string
	Description string
	Lat         float64
	Lon         float64
	Mode        Mode
}

// RawStation is a rail station location record before alias-code resolution.
// It carries a display name and one coordinate pair; the codes the station
// is known under come from a separate mapping joined by normalized name.
type RawStation struct {
	Name string
	Lat  float64
	Lon  float64
}

// RawRoute is one directional route record as handed over by a source
// collaborator: the identity key shared by both directions of a physical
// line, the raw direction value of the source system, display attributes,
// and the ordered stop sequence for that direction.
type RawRoute struct {
	IdentityKey string
	Mode        Mode
	Direction   int
	ShortName   string
	LongName    string
	Color       string
	StopIDs     []string
}
