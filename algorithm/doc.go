// Package algorithm implements generic sequence algorithms over the
// iterator model.
//
// Every algorithm has one observable behavior, but several strategies are
// selected by the Category of the iterators it receives. Copy counts once and
// loops by decrement over random-access ranges and falls back to a single
// block move when both ends are Contiguous. Rotate uses a cyclic swap walk,
// three reversals or GCD cycles depending on the traversal capability.
//
// Functions taking an ordering come in pairs: the plain form requires
// cmp.Ordered elements and the Func form takes a strict weak ordering less.
// Sorted-range algorithms require their inputs sorted under that ordering;
// violating that is a precondition failure with an unspecified result.
package algorithm
