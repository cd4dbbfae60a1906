package gtfs

import (
	"fmt"
	"strconv"
	"strings"
)

// RouteType represents the possible set of GTFS route types.
type RouteType int

const (
	// RouteTypeLRT is a route served by a light rail or streetcar system.
	RouteTypeLRT RouteType = 0
	// RouteTypeSubway is a route served by a subway or metro system.
	RouteTypeSubway RouteType = 1
	// RouteTypeRail is a route served by a heavy rail system.
	RouteTypeRail RouteType = 2
	// RouteTypeBus is a route served by a bus.
	RouteTypeBus RouteType = 3
)

// String presents the caller with a human readable version of this enum.
func (rt RouteType) String() string {
	switch rt {
	case RouteTypeLRT:
		return "LRT/Streetcar"
	case RouteTypeSubway:
		return "Subway"
	case RouteTypeRail:
		return "Rail"
	case RouteTypeBus:
		return "Bus"
	default:
		return "Unknown"
	}
}

// MarshalCSV converts this enum into a string for CSV writing.
func (rt RouteType) MarshalCSV() (string, error) {
	return strconv.Itoa(int(rt)), nil
}

// UnmarshalCSV attempts to convert a string value from a CSV file into the enum value.
func (rt *RouteType) UnmarshalCSV(csv string) error {
	val, err := strconv.ParseInt(strings.TrimSpace(csv), 10, 32)
	if err != nil {
		return err
	}
	*rt = RouteType(val)
	return nil
}

// Agency represents the transit agency supplying service.
type Agency struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Language string `csv:"agency_lang"`
}

// Stop is a single boardable location: a bus stop, or one coded platform
// group of a rail station. Interchange stations appear once per station code,
// with identical coordinates on every record.
type Stop struct {
	ID          string  `csv:"stop_id"`
	Code        string  `csv:"stop_code"`
	Name        string  `csv:"stop_name"`
	Description string  `csv:"stop_desc"`
	Lat         float64 `csv:"stop_lat"`
	Lon         float64 `csv:"stop_lon"`
}

// Route represents a logical service line, one record per line regardless of
// how many directions it is operated in.
type Route struct {
	ID        string    `csv:"route_id"`
	AgencyID  string    `csv:"agency_id"`
	ShortName string    `csv:"route_short_name"`
	LongName  string    `csv:"route_long_name"`
	Type      RouteType `csv:"route_type"`
	Color     string    `csv:"route_color"`
}

// Trip is one directional traversal of a route under a service calendar.
type Trip struct {
	RouteID     string `csv:"route_id"`
	ServiceID   string `csv:"service_id"`
	ID          string `csv:"trip_id"`
	Headsign    string `csv:"trip_headsign"`
	DirectionID int    `csv:"direction_id"`
}

// StopTime records when a trip calls at a stop. Sequence indices are
// contiguous from zero within a trip.
type StopTime struct {
	TripID        string      `csv:"trip_id"`
	ArrivalTime   ServiceTime `csv:"arrival_time"`
	DepartureTime ServiceTime `csv:"departure_time"`
	StopID        string      `csv:"stop_id"`
	Sequence      int         `csv:"stop_sequence"`
}

// Calendar is a set of days that the specified service is available.
type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	StartDate Date   `csv:"start_date"`
	EndDate   Date   `csv:"end_date"`
}

// FeedInfo carries publisher and contact metadata for the feed artifact.
type FeedInfo struct {
	PublisherName string `csv:"feed_publisher_name"`
	PublisherURL  string `csv:"feed_publisher_url"`
	Language      string `csv:"feed_lang"`
	StartDate     Date   `csv:"feed_start_date"`
	EndDate       Date   `csv:"feed_end_date"`
	Version       string `csv:"feed_version"`
	ContactEmail  string `csv:"feed_contact_email"`
	ContactURL    string `csv:"feed_contact_url"`
}

// Feed is the complete cross-referencing table set. It is an in-memory
// artifact only; FeedWriter turns it into files.
type Feed struct {
	Agencies  []Agency
	Stops     []Stop
	Routes    []Route
	Trips     []Trip
	StopTimes []StopTime
	Calendar  []Calendar
	FeedInfo  []FeedInfo
}

// TableCounts returns a short row-count summary, keyed by file name.
func (f *Feed) TableCounts() map[string]int {
	return map[string]int{
		FileAgency:    len(f.Agencies),
		FileStops:     len(f.Stops),
		FileRoutes:    len(f.Routes),
		FileTrips:     len(f.Trips),
		FileStopTimes: len(f.StopTimes),
		FileCalendar:  len(f.Calendar),
		FileFeedInfo:  len(f.FeedInfo),
	}
}

// File names of the emitted table set.
const (
	FileAgency    = "agency.txt"
	FileStops     = "stops.txt"
	FileRoutes    = "routes.txt"
	FileTrips     = "trips.txt"
	FileStopTimes = "stop_times.txt"
	FileCalendar  = "calendar.txt"
	FileFeedInfo  = "feed_info.txt"
)

// RequiredFiles lists the files a structurally complete feed must contain.
func RequiredFiles() []string {
	return []string{FileAgency, FileStops, FileRoutes, FileTrips, FileStopTimes}
}

// String implements fmt.Stringer for diagnostics.
func (s Stop) String() string {
	return fmt.Sprintf("%s (%s @ %f,%f)", s.ID, s.Name, s.Lat, s.Lon)
}
