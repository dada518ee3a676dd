// Copyright (c) 2024 Neomantra Corp

package book_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marketfeeds/itch-go"
	"github.com/marketfeeds/itch-go/book"
)

func TestBook(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "book suite")
}

func add(ref uint64, side itch.Side, shares, price uint32) itch.DecodedEvent {
	return itch.DecodedEvent{Kind: itch.KindAdd, OrderRef: ref, Side: side, Shares: shares, Price: price}
}

func del(ref uint64) itch.DecodedEvent {
	return itch.DecodedEvent{Kind: itch.KindDelete, OrderRef: ref}
}

func cancel(ref uint64, cancelled uint32) itch.DecodedEvent {
	return itch.DecodedEvent{Kind: itch.KindCancel, OrderRef: ref, CancelledShares: cancelled}
}

func exec(ref uint64, executed uint32) itch.DecodedEvent {
	return itch.DecodedEvent{Kind: itch.KindExecuteAtOrderPrice, OrderRef: ref, ExecutedShares: executed}
}

func replace(orig, newRef uint64, shares, price uint32) itch.DecodedEvent {
	return itch.DecodedEvent{Kind: itch.KindReplace, OrderRef: orig, NewOrderRef: newRef, Shares: shares, Price: price}
}

var _ = Describe("State", func() {
	var s *book.State

	BeforeEach(func() {
		s = book.NewState()
	})

	It("handles add then delete", func() {
		e1 := add(100, itch.SideBuy, 200, 10000)
		s.Apply(&e1)
		Expect(e1.Bid).To(Equal(uint32(10000)))
		Expect(e1.Ask).To(Equal(uint32(0)))
		Expect(e1.BidDepth).To(Equal(uint32(200)))

		e2 := del(100)
		s.Apply(&e2)
		Expect(e2.Bid).To(Equal(uint32(0)))
		Expect(e2.BidDepth).To(Equal(uint32(0)))
	})

	It("tracks a two-level bid stack", func() {
		e1 := add(1, itch.SideBuy, 100, 10050)
		s.Apply(&e1)
		e2 := add(2, itch.SideBuy, 300, 10000)
		s.Apply(&e2)
		Expect(e2.Bid).To(Equal(uint32(10050)))
		Expect(e2.BidDepth).To(Equal(uint32(400)))

		e3 := del(1)
		s.Apply(&e3)
		Expect(e3.Bid).To(Equal(uint32(10000)))
		Expect(e3.BidDepth).To(Equal(uint32(300)))
	})

	It("handles a partial then full execute", func() {
		e1 := add(7, itch.SideSell, 500, 10100)
		s.Apply(&e1)
		e2 := exec(7, 200)
		s.Apply(&e2)
		Expect(e2.Ask).To(Equal(uint32(10100)))
		Expect(e2.AskDepth).To(Equal(uint32(300)))

		e3 := exec(7, 300)
		s.Apply(&e3)
		Expect(e3.Ask).To(Equal(uint32(0)))
		Expect(e3.AskDepth).To(Equal(uint32(0)))
	})

	It("treats a delete after a cancel-to-zero as a no-op", func() {
		e1 := add(9, itch.SideBuy, 100, 9900)
		s.Apply(&e1)
		e2 := cancel(9, 100)
		s.Apply(&e2)
		Expect(e2.BidDepth).To(Equal(uint32(0)))
		Expect(e2.Bid).To(Equal(uint32(0)))

		e3 := del(9)
		s.Apply(&e3)
		Expect(e3.BidDepth).To(Equal(uint32(0)))
	})

	It("handles a replace that crosses the prior best", func() {
		e1 := add(1, itch.SideBuy, 200, 10000)
		s.Apply(&e1)
		e2 := add(2, itch.SideBuy, 100, 9900)
		s.Apply(&e2)
		e3 := replace(1, 3, 50, 9800)
		s.Apply(&e3)

		Expect(e3.Bid).To(Equal(uint32(9900)))
		Expect(e3.BidDepth).To(Equal(uint32(150)))
		Expect(s.Orders).To(HaveKey(uint64(3)))
		Expect(s.Orders).NotTo(HaveKey(uint64(1)))
	})

	It("keeps a strictly positive spread across an interleaved non-crossing script", func() {
		steps := []itch.DecodedEvent{
			add(1, itch.SideBuy, 100, 9900),
			add(2, itch.SideSell, 100, 10100),
			add(3, itch.SideBuy, 50, 9950),
			add(4, itch.SideSell, 50, 10050),
		}
		for i := range steps {
			s.Apply(&steps[i])
			if steps[i].Bid > 0 && steps[i].Ask > 0 {
				Expect(steps[i].Spread).To(BeNumerically(">", 0))
			}
		}
	})

	It("tolerates a cancel referencing an unknown order", func() {
		e1 := cancel(999, 10)
		s.Apply(&e1)
		Expect(e1.BidDepth).To(Equal(uint32(0)))
		Expect(e1.AskDepth).To(Equal(uint32(0)))
	})

	It("never lets an order_ref live on both sides simultaneously", func() {
		e1 := add(1, itch.SideBuy, 100, 10000)
		s.Apply(&e1)
		e2 := replace(1, 2, 100, 10000)
		s.Apply(&e2)
		_, onOldRef := s.Orders[1]
		Expect(onOldRef).To(BeFalse())
	})
})
