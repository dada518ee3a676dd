// Copyright (c) 2024 Neomantra Corp

package itch

// DecodedEvent is the flat, kind-discriminated record produced by the
// Scanner for every book-relevant ITCH message, and annotated in-place by
// the book engine with the prevailing top-of-book after it is applied.
//
// Not every field is meaningful for every Kind; see the field comments.
type DecodedEvent struct {
	Kind Kind

	Locate    uint16
	Timestamp uint64 // nanoseconds since midnight (48-bit on the wire)

	OrderRef uint64
	Side     Side
	Shares   uint32 // resting size (Add), new size (Replace)
	Price    uint32 // tick-unit price, 4 implied decimals

	ExecutedShares uint32 // ExecuteAtOrderPrice / ExecuteWithPrice
	ExecutedPrice  uint32 // ExecuteWithPrice only
	CancelledShares uint32 // Cancel only

	NewOrderRef uint64 // Replace only

	// Book-engine annotations, filled in after the event is applied.
	Bid       uint32
	Ask       uint32
	Spread    uint32
	BidDepth  uint32
	AskDepth  uint32
	Depth     uint32
}
