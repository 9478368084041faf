// Showlog - Personal Media Watch Tracking and Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package models provides the shared data structures for the Showlog application:
// watch events, per-episode progress records, library list membership, title
// metadata, and the computed statistics and achievement snapshots served by the
// HTTP API.
//
// Everything in this package is plain data. The types carry no behavior beyond
// small accessors that encode structural invariants (for example, an absent
// episode progress record is equivalent to unwatched). Computation over these
// structures lives in the engine package.
package models
