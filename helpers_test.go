// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marketfeeds/itch-go"
)

var _ = Describe("PriceToFloat64", func() {
	It("divides by 10,000", func() {
		Expect(itch.PriceToFloat64(10000)).To(Equal(1.0))
		Expect(itch.PriceToFloat64(123450)).To(Equal(12.345))
	})
})

var _ = Describe("TimestampToDuration", func() {
	It("converts nanoseconds-since-midnight to a Duration", func() {
		Expect(itch.TimestampToDuration(0)).To(Equal(time.Duration(0)))
		Expect(itch.TimestampToDuration(1_000_000_000)).To(Equal(time.Second))
	})
})

var _ = Describe("TimestampToTime", func() {
	It("adds the duration to midnight of the given date", func() {
		date := time.Date(2026, 1, 15, 13, 0, 0, 0, time.UTC)
		ts := itch.TimestampToTime(date, 3_600_000_000_000) // 1 hour
		Expect(ts).To(Equal(time.Date(2026, 1, 15, 1, 0, 0, 0, time.UTC)))
	})
})
