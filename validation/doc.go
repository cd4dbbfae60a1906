// Package validation decides whether a generated feed passes. It audits the
// output structure, runs the canonical MobilityData validator as a black-box
// subprocess, and classifies the validator's structured report by severity.
//
// The classification reads the report body, never the validator's exit
// status: the process is known to exit zero even when error-severity
// findings are present, so the exit code is not a trustworthy signal.
package validation
