// Package conv provides checked integer conversions for values read from or
// written to persisted streams.
//
// Sizes and counts in a stream header come from untrusted bytes, so they are
// converted with bounds checks instead of plain casts. Failures wrap
// [ErrOverflow].
package conv
