// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package engine implements the progress and analytics engine: the
// deterministic computation layer behind Showlog.
//
// The engine has three responsibilities:
//
//   - Status classification: mapping a title's metadata and per-episode watch
//     state to an automatic library status (watching, completed, all caught
//     up) or to "no classification".
//   - Stats aggregation: projecting the full watch-event log, progress store,
//     and library lists into a flat CalculatedStats snapshot with
//     time-windowed counts, streaks, genre distributions, and histograms.
//   - Achievement evaluation: running a static catalog of pure checks over
//     the user data and the stats snapshot.
//
// Every function in this package is a pure, synchronous computation over
// already-materialized inputs. There is no I/O, no caching, and no shared
// state; callers pass the UserData snapshot explicitly and recompute from
// scratch on every relevant mutation. Per-user data volumes are small
// (thousands of events), so full recomputation stays cheap.
//
// Malformed input never surfaces as an error: events with unparsable
// timestamps are filtered out before any aggregation pass, and empty inputs
// produce all-zero output.
package engine
