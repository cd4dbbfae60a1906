// Package datamall retrieves the raw network topology the synthesis engine
// consumes: bus stops, services, and routes from the LTA DataMall API, and
// rail stations, lines, and line sequences from static CSV files.
//
// The package owns everything the engine explicitly does not: HTTP,
// pagination, rate limiting, snapshot caching for replay, and file parsing.
// Its outputs are fully-materialized in-memory records in the engine's
// input shape.
package datamall
