// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marketfeeds/itch-go"
)

var _ = Describe("LoadLocateTable", func() {
	It("restricts the table to the requested subset", func() {
		csv := "AAPL,5\nMSFT,6\nGOOG,7\n"
		table, err := itch.LoadLocateTable(strings.NewReader(csv), []string{"AAPL", "GOOG"})
		Expect(err).To(BeNil())
		Expect(table.Len()).To(Equal(2))
		Expect(table.Contains(5)).To(BeTrue())
		Expect(table.Contains(6)).To(BeFalse())
		Expect(table.Ticker(7)).To(Equal("GOOG"))

		locate, ok := table.Locate("AAPL")
		Expect(ok).To(BeTrue())
		Expect(locate).To(Equal(uint16(5)))
	})

	It("skips blank lines and malformed records", func() {
		csv := "AAPL,5\n\nbadline\nMSFT,6\n"
		table, err := itch.LoadLocateTable(strings.NewReader(csv), []string{"AAPL", "MSFT"})
		Expect(err).To(BeNil())
		Expect(table.Len()).To(Equal(2))
	})
})
