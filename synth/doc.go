/*
Package synth is the feed synthesis engine: it turns raw, duplicate-laden
network topology (stop locations, route stop sequences, per-mode speed and
dwell parameters) into a referentially consistent GTFS table set with
estimated timings.

The engine is a strictly sequential pipeline:

	StopRegistry -> RouteRegistry -> TripSynthesizer -> ScheduleEstimator -> FeedAssembler

Both source modes (bus and rail) are fully ingested by the registries before
any trip is synthesized, so every identifier a trip references is already
stable. All state is scoped to one Pipeline.Run call; repeated or concurrent
runs never share mutable state.

Timings are invented, not measured: inter-stop travel time is derived from
haversine distance and a constant per-mode average speed, floored to a
configurable minimum, with a constant dwell at every stop. The resulting
schedule is an explicit best-effort estimate. A fixed-interval model was
rejected because it implies impossible speeds between close stops and
absurd dwell between distant ones; the distance-based model bounds implied
speed to the configured constant everywhere.

Failures surface as *DefectError values naming the defect category and the
offending entity ids. Partial output is never returned: Run yields either a
feed that passed every assembly invariant, or an error.
*/
package synth
