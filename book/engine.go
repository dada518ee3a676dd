// Copyright (c) 2024 Neomantra Corp

// Package book implements the per-symbol Level-2 order-book replay engine:
// given a symbol's decoded event log in wire order, it maintains live
// resting orders and derives top-of-book, spread, and depth after each
// event.
package book

import (
	"github.com/marketfeeds/itch-go"
)

// LiveOrder is a resting order: its side, price, and remaining shares.
type LiveOrder struct {
	Side   itch.Side
	Price  uint32
	Shares uint32
}

// PriceLadder is an unordered mapping of price to aggregate resting shares
// on one side of the book; recomputeBest scans it for the best price.
// Zero-aggregate entries are removed rather
// than retained, per the "standardize on removal" choice recorded in
// DESIGN.md.
type PriceLadder map[uint32]uint32

// State holds one symbol's live book: a single order index keyed by order
// reference (rather than one index per side, per the spec's design-notes
// recommendation) plus the two price ladders and their derived scalars.
type State struct {
	Orders map[uint64]LiveOrder

	BidLadder PriceLadder
	AskLadder PriceLadder

	BestBid  uint32
	BestAsk  uint32
	BidDepth uint32
	AskDepth uint32
}

// NewState returns an empty book, ready to replay a symbol's event log from
// the start of the session (or mid-session, per the missing-order policy).
func NewState() *State {
	return &State{
		Orders:    make(map[uint64]LiveOrder),
		BidLadder: make(PriceLadder),
		AskLadder: make(PriceLadder),
	}
}

func (s *State) ladderFor(side itch.Side) PriceLadder {
	if side == itch.SideBuy {
		return s.BidLadder
	}
	return s.AskLadder
}

// addToLadder adds shares to price's aggregate on the given side.
func addToLadder(ladder PriceLadder, price, shares uint32) {
	ladder[price] += shares
}

// removeFromLadder subtracts shares from price's aggregate, clamping at
// zero rather than going negative. A clamp here means the replay began
// mid-session or an upstream bug underflowed accounting; per the spec this
// is tolerated in release builds rather than treated as fatal.
func removeFromLadder(ladder PriceLadder, price, shares uint32) {
	cur := ladder[price]
	if shares > cur {
		shares = cur
	}
	cur -= shares
	if cur == 0 {
		delete(ladder, price)
	} else {
		ladder[price] = cur
	}
}

func clampSub(total, shares uint32) uint32 {
	if shares > total {
		return 0
	}
	return total - shares
}

// recomputeBest scans a ladder's positive-aggregate entries for the best
// price: the maximum on the bid side, the minimum on the ask side. This is
// the "derived" top-of-book strategy from the spec, chosen over incremental
// tracking for its directness — see DESIGN.md.
func recomputeBest(ladder PriceLadder, isBid bool) uint32 {
	var best uint32
	found := false
	for price, shares := range ladder {
		if shares == 0 {
			continue
		}
		if !found {
			best, found = price, true
			continue
		}
		if isBid && price > best {
			best = price
		} else if !isBid && price < best {
			best = price
		}
	}
	return best
}

// Apply mutates the book according to event.Kind and writes the resulting
// top-of-book snapshot (Bid, Ask, Spread, BidDepth, AskDepth, Depth) onto
// event in place. Events referencing an unknown order_ref are no-ops on the
// book but still receive a snapshot.
func (s *State) Apply(event *itch.DecodedEvent) {
	switch event.Kind {
	case itch.KindAdd, itch.KindAddAttr:
		s.applyAdd(event)
	case itch.KindDelete:
		s.applyDelete(event)
	case itch.KindCancel:
		s.applyCancel(event)
	case itch.KindExecuteAtOrderPrice, itch.KindExecuteWithPrice:
		s.applyExecute(event)
	case itch.KindReplace:
		s.applyReplace(event)
	case itch.KindTrade:
		// no-op on the book
	}
	s.snapshot(event)
}

func (s *State) applyAdd(event *itch.DecodedEvent) {
	s.Orders[event.OrderRef] = LiveOrder{
		Side:   event.Side,
		Price:  event.Price,
		Shares: event.Shares,
	}
	addToLadder(s.ladderFor(event.Side), event.Price, event.Shares)
	if event.Side == itch.SideBuy {
		s.BidDepth += event.Shares
	} else {
		s.AskDepth += event.Shares
	}
}

func (s *State) applyDelete(event *itch.DecodedEvent) {
	order, ok := s.Orders[event.OrderRef]
	if !ok {
		return
	}
	s.removeOrder(event.OrderRef, order, order.Shares)
}

func (s *State) applyCancel(event *itch.DecodedEvent) {
	order, ok := s.Orders[event.OrderRef]
	if !ok {
		return
	}
	cancelled := event.CancelledShares
	removeFromLadder(s.ladderFor(order.Side), order.Price, cancelled)
	s.subDepth(order.Side, cancelled)

	remaining := clampSub(order.Shares, cancelled)
	if remaining == 0 {
		delete(s.Orders, event.OrderRef)
		return
	}
	order.Shares = remaining
	s.Orders[event.OrderRef] = order
}

func (s *State) applyExecute(event *itch.DecodedEvent) {
	order, ok := s.Orders[event.OrderRef]
	if !ok {
		return
	}
	executed := event.ExecutedShares
	removeFromLadder(s.ladderFor(order.Side), order.Price, executed)
	s.subDepth(order.Side, executed)

	remaining := clampSub(order.Shares, executed)
	if remaining == 0 {
		delete(s.Orders, event.OrderRef)
		return
	}
	order.Shares = remaining
	s.Orders[event.OrderRef] = order
}

func (s *State) applyReplace(event *itch.DecodedEvent) {
	order, ok := s.Orders[event.OrderRef]
	if !ok {
		// Unknown original order: no-op, we have no side to place the new
		// order on, matching the missing-order policy.
		return
	}
	s.removeOrder(event.OrderRef, order, order.Shares)

	s.Orders[event.NewOrderRef] = LiveOrder{
		Side:   order.Side,
		Price:  event.Price,
		Shares: event.Shares,
	}
	addToLadder(s.ladderFor(order.Side), event.Price, event.Shares)
	s.addDepth(order.Side, event.Shares)
}

// removeOrder fully removes an order from its index, ladder, and depth.
func (s *State) removeOrder(ref uint64, order LiveOrder, shares uint32) {
	removeFromLadder(s.ladderFor(order.Side), order.Price, shares)
	s.subDepth(order.Side, shares)
	delete(s.Orders, ref)
}

func (s *State) addDepth(side itch.Side, shares uint32) {
	if side == itch.SideBuy {
		s.BidDepth += shares
	} else {
		s.AskDepth += shares
	}
}

func (s *State) subDepth(side itch.Side, shares uint32) {
	if side == itch.SideBuy {
		s.BidDepth = clampSub(s.BidDepth, shares)
	} else {
		s.AskDepth = clampSub(s.AskDepth, shares)
	}
}

// snapshot recomputes best bid/ask and writes the top-of-book annotation
// onto event.
func (s *State) snapshot(event *itch.DecodedEvent) {
	s.BestBid = recomputeBest(s.BidLadder, true)
	s.BestAsk = recomputeBest(s.AskLadder, false)

	event.Bid = s.BestBid
	event.Ask = s.BestAsk
	if s.BestAsk >= s.BestBid && s.BestBid > 0 {
		event.Spread = s.BestAsk - s.BestBid
	} else {
		event.Spread = 0
	}
	event.BidDepth = s.BidDepth
	event.AskDepth = s.AskDepth
	event.Depth = s.BidDepth + s.AskDepth
}

// Replay applies every event in log, in order, mutating each event in
// place with its post-event book snapshot. Replay of one symbol's log is
// strictly sequential; the book engine carries no cross-symbol state, so
// distinct symbols' logs may be replayed concurrently by the caller.
func Replay(log []itch.DecodedEvent) {
	state := NewState()
	for i := range log {
		state.Apply(&log[i])
	}
}
