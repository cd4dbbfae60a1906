package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ph-dataviz/gtfs-sg/gtfs"
)

// Finding is one structural observation about a generated feed.
type Finding struct {
	Severity string
	Message  string
}

// AuditDirectory checks that an output directory contains every required
// feed file. Missing required files are error-tier findings.
func AuditDirectory(dir string) []Finding {
	var findings []Finding

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return []Finding{{
			Severity: SeverityError,
			Message:  fmt.Sprintf("feed path %s is not a directory", dir),
		}}
	}

	for _, name := range gtfs.RequiredFiles() {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			findings = append(findings, Finding{
				Severity: SeverityError,
				Message:  "missing required file: " + name,
			})
		}
	}
	return findings
}

// AuditFeed reports warning-tier oddities the assembler tolerates: routes
// that ended up with no trips and stops with zeroed coordinates. Neither
// breaks referential integrity, but both are usually a sign of thin or
// stale source data.
func AuditFeed(feed *gtfs.Feed) []Finding {
	var findings []Finding

	routesWithTrips := make(map[string]struct{}, len(feed.Routes))
	for _, t := range feed.Trips {
		routesWithTrips[t.RouteID] = struct{}{}
	}
	for _, r := range feed.Routes {
		if _, ok := routesWithTrips[r.ID]; !ok {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Message:  "route has no trips: " + r.ID,
			})
		}
	}

	for _, s := range feed.Stops {
		if s.Lat == 0 && s.Lon == 0 {
			findings = append(findings, Finding{
				Severity: SeverityWarning,
				Message:  "stop has zero coordinates: " + s.ID,
			})
		}
	}
	return findings
}

// HasErrors reports whether any finding is error-tier.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
