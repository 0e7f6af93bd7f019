// Package integrity detects truncated or corrupted tile files.
//
// Check applies offset-table heuristics that catch the common corruption
// pattern of a tile file cut short and padded with one-byte placeholder
// frames, then decodes every remaining frame structurally. Checker runs Check
// over tiles fetched by id and sweeps many ids in parallel.
//
// The thresholds are heuristics tuned against real client data, not
// guarantees: a file reported valid may still render incorrectly.
package integrity
