// Package gtfs models the GTFS static table set produced by the feed
// synthesizer and writes it out as the standard .txt CSV files.
//
// The package is output-oriented: each struct maps one-to-one onto a GTFS
// file, with csv struct tags fixing the column names and field order fixing
// the column order. Both are a compatibility surface with downstream routing
// engines and validators and must not be reordered casually.
package gtfs
