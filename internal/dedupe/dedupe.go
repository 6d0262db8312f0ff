package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent reads of the same key into a single backend call.

import "golang.org/x/sync/singleflight"

// RecordGroup deduplicates battle record lookups keyed by battle ID.
var RecordGroup singleflight.Group

// LeaderboardGroup deduplicates leaderboard reads keyed by "board:<limit>".
var LeaderboardGroup singleflight.Group
