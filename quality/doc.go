// Package quality inspects a corrected dataset: null-cell counts per
// column, per-crop means over a fixed set of feature columns, and a small
// table of agronomic sanity checks on those means (rice needs monsoon
// rainfall, wheat grows in calm winter air). Checks are diagnostic; a
// failed expectation flags the report but nothing refuses to proceed.
package quality
