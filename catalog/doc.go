// Package catalog holds the static agronomy lookup tables: the scientific
// nutrient/climate profile for each crop, the crop→season assignment, and
// the per-season weather ranges. The tables are immutable; correction code
// resolves them through a Catalog, which answers every lookup (unknown
// crops and seasons fall back to the catalog-wide defaults rather than
// failing).
//
// Built-in tables can be extended from a YAML overrides file:
//
//	cat, err := catalog.Builtin().Merge(overrides)
package catalog
