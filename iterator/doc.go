// Package iterator defines the position model shared by every container and
// algorithm in seqkit.
//
// An iterator is a small value that names a position in a sequence. Stepping
// returns a new value; the old one stays put. Each iterator reports a
// Category that algorithms inspect to pick the cheapest strategy:
//
//	CategorySinglePass    read once, in order (FromSeq)
//	CategoryForward       re-readable, forward only (hash tables)
//	CategoryBidirectional forward and backward (lists)
//	CategoryRandomAccess  constant-time jumps and distances (slices, deques)
//
// The interfaces are F-bounded: It is the concrete iterator type itself, so
// Next returns It and no boxing occurs on the hot path. Because the element
// type cannot always be inferred from It alone, callers name it explicitly:
//
//	first, last := iterator.Range(src)
//	algorithm.Copy[int](first, last, iterator.Append(&dst))
package iterator
