// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marketfeeds/itch-go"
)

var _ = Describe("NullVisitor", func() {
	It("implements the Visitor interface", func() {
		var v itch.Visitor = &itch.NullVisitor{}
		Expect(v.OnAdd(&itch.DecodedEvent{})).To(BeNil())
		Expect(v.OnStreamEnd()).To(BeNil())
	})
})
