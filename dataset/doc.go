// Package dataset models the crop CSV files the toolchain consumes and
// produces. A Dataset keeps the header order and every column it read,
// known or not, so a corrected file differs from its input only in the
// feature cells. Readers tolerate a UTF-8 BOM and pick the delimiter from
// the file extension.
package dataset
