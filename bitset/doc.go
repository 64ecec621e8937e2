// Package bitset implements a compressed bitmap of uint32 positions.
//
// A Bitset is a sequence of 32-bit words, each either a literal holding 31
// consecutive positions or a fill eliding a run of empty slots. A fill may carry
// one set bit for the slot that follows the run, so an isolated position next to
// a long gap costs a single word.
//
// The word sequence is always canonical: for a given set of positions there is
// exactly one encoding, whether it was built in bulk with FromBits, by repeated
// calls to Set, or as the result of And, Or, Xor or AndNot. Two Bitsets are
// therefore Equal iff their words are identical.
//
// Point queries and mutations work directly on the compressed form and cost
// O(words). Mutating close to the front of a long encoding shifts every
// following word.
//
// A Bitset is not safe for concurrent mutation.
package bitset
