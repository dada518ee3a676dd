// Copyright (c) 2024 Neomantra Corp

package itch_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/marketfeeds/itch-go"
)

// Test Launcher
func TestItch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "itch-go suite")
}

// chunkedReader serves a byte slice n bytes at a time, to exercise the
// scanner's buffer-refill discipline at the smallest safe threshold.
type chunkedReader struct {
	data []byte
	pos  int
	n    int
}

func (r *chunkedReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, nil
	}
	n := r.n
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

func putU48(b []byte, v uint64) {
	b[0] = byte(v >> 40)
	b[1] = byte(v >> 32)
	b[2] = byte(v >> 24)
	b[3] = byte(v >> 16)
	b[4] = byte(v >> 8)
	b[5] = byte(v)
}

// buildAdd constructs a wire-format 'A' message for locate/order_ref/side/shares/price.
func buildAdd(locate uint16, ref uint64, side byte, shares, price uint32) []byte {
	buf := make([]byte, 1+37)
	buf[0] = itch.DiscAddOrder
	binary.BigEndian.PutUint16(buf[1:3], locate)
	putU48(buf[5:11], 42)
	binary.BigEndian.PutUint64(buf[11:19], ref)
	buf[19] = side
	binary.BigEndian.PutUint32(buf[20:24], shares)
	binary.BigEndian.PutUint32(buf[32:36], price)
	return buf
}

func buildDelete(locate uint16, ref uint64) []byte {
	buf := make([]byte, 1+20)
	buf[0] = itch.DiscOrderDelete
	binary.BigEndian.PutUint16(buf[1:3], locate)
	binary.BigEndian.PutUint64(buf[11:19], ref)
	return buf
}

func buildSystemEvent(code byte) []byte {
	buf := make([]byte, 1+13)
	buf[0] = itch.DiscSystemEvent
	buf[13] = code
	return buf
}

var _ = Describe("Scanner", func() {
	It("decodes an Add followed by a Delete for a tracked locate", func() {
		locates, err := itch.LoadLocateTable(bytes.NewBufferString("AAPL,5\n"), []string{"AAPL"})
		Expect(err).To(BeNil())

		var wire bytes.Buffer
		wire.Write(buildAdd(5, 100, 'B', 200, 10000))
		wire.Write(buildDelete(5, 100))

		scanner := itch.NewScanner(&wire, locates, 0)
		Expect(scanner.Run()).To(BeNil())
		Expect(scanner.Companies[5]).To(HaveLen(2))
		Expect(scanner.Companies[5][0].Kind).To(Equal(itch.KindAdd))
		Expect(scanner.Companies[5][0].Shares).To(Equal(uint32(200)))
		Expect(scanner.Companies[5][1].Kind).To(Equal(itch.KindDelete))
	})

	It("drops messages for an untracked locate without misaligning the stream", func() {
		table, err := itch.LoadLocateTable(bytes.NewBufferString("AAPL,5\n"), []string{"AAPL"})
		Expect(err).To(BeNil())

		var wire bytes.Buffer
		wire.Write(buildAdd(99, 1, 'B', 100, 9900)) // untracked locate
		wire.Write(buildAdd(5, 2, 'S', 50, 10100))  // tracked

		scanner := itch.NewScanner(&wire, table, 0)
		Expect(scanner.Run()).To(BeNil())
		Expect(scanner.Companies).NotTo(HaveKey(uint16(99)))
		Expect(scanner.Companies[5]).To(HaveLen(1))
		Expect(scanner.Companies[5][0].OrderRef).To(Equal(uint64(2)))
	})

	It("fails fatally on an unrecognized discriminant", func() {
		table, _ := itch.LoadLocateTable(bytes.NewBufferString(""), nil)
		scanner := itch.NewScanner(bytes.NewBufferString("?xxxx"), table, 0)
		err := scanner.Run()
		Expect(err).To(HaveOccurred())
		var unknownErr *itch.UnknownMessageError
		Expect(err).To(BeAssignableToTypeOf(unknownErr))
	})

	It("records System Event codes", func() {
		table, _ := itch.LoadLocateTable(bytes.NewBufferString(""), nil)
		var wire bytes.Buffer
		wire.Write(buildSystemEvent('O'))
		wire.Write(buildSystemEvent('C'))

		scanner := itch.NewScanner(&wire, table, 0)
		Expect(scanner.Run()).To(BeNil())
		Expect(scanner.Sessions).To(Equal([]itch.SystemEventCode{
			itch.SystemEventStartOfMessages,
			itch.SystemEventEndOfMessages,
		}))
	})

	It("consumes exactly the sum of message bytes for an arbitrary concatenation", func() {
		table, err := itch.LoadLocateTable(bytes.NewBufferString("AAPL,5\n"), []string{"AAPL"})
		Expect(err).To(BeNil())

		var wire bytes.Buffer
		wire.Write(buildAdd(5, 1, 'B', 100, 10000))
		wire.Write(buildDelete(5, 1))
		wire.Write(buildSystemEvent('Q'))
		raw := wire.Bytes()

		scanner := itch.NewScanner(bytes.NewReader(raw), table, 0)
		Expect(scanner.Run()).To(BeNil())
		Expect(scanner.Companies[5]).To(HaveLen(2))
	})

	It("produces byte-identical decode results whether refilled whole or 51 bytes at a time", func() {
		table, err := itch.LoadLocateTable(bytes.NewBufferString("AAPL,5\n"), []string{"AAPL"})
		Expect(err).To(BeNil())

		var wire bytes.Buffer
		wire.Write(buildAdd(5, 1, 'B', 100, 10000))
		wire.Write(buildAdd(5, 2, 'S', 300, 10100))
		wire.Write(buildDelete(5, 1))
		raw := wire.Bytes()

		wholeScanner := itch.NewScanner(bytes.NewReader(raw), table, itch.DefaultBufferSize)
		Expect(wholeScanner.Run()).To(BeNil())

		chunked := &chunkedReader{data: raw, n: 51}
		chunkScanner := itch.NewScanner(chunked, table, itch.MaxPayloadSize+1)
		Expect(chunkScanner.Run()).To(BeNil())

		Expect(chunkScanner.Companies[5]).To(Equal(wholeScanner.Companies[5]))
	})
})
