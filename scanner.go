// Copyright (c) 2024 Neomantra Corp

package itch

import (
	"io"
)

// Scanner is the streaming binary message decoder. It consumes an unframed
// ITCH byte stream through a fixed-capacity staging buffer, recognizes
// messages by their one-byte discriminant, and appends one DecodedEvent per
// accepted message to a per-locate event log.
//
// A Scanner is single-use: call Run once, then read Companies.
type Scanner struct {
	src io.Reader

	buf    []byte
	pos    int // next unread byte in buf
	end    int // one past the last valid byte in buf
	offset int64 // total bytes consumed from src, for error reporting

	locates *LocateTable

	// Companies accumulates decoded events keyed by locate code, in wire
	// order per locate, for later replay by the book engine.
	Companies map[uint16][]DecodedEvent

	// Sessions records the event codes carried by System Event messages,
	// in the order they were observed on the wire.
	Sessions []SystemEventCode
}

// NewScanner returns a Scanner reading from src, filtering by locates, with
// a staging buffer of the given capacity (DefaultBufferSize if size <= 0).
func NewScanner(src io.Reader, locates *LocateTable, size int) *Scanner {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &Scanner{
		src:       src,
		buf:       make([]byte, size),
		locates:   locates,
		Companies: make(map[uint16][]DecodedEvent),
	}
}

// available returns the number of unread bytes currently staged.
func (s *Scanner) available() int {
	return s.end - s.pos
}

// refill compacts any unread bytes to the front of the buffer and reads more
// from the source. It returns the number of bytes newly read (0 on EOF).
func (s *Scanner) refill() (int, error) {
	if s.pos > 0 {
		copy(s.buf, s.buf[s.pos:s.end])
		s.end -= s.pos
		s.pos = 0
	}
	if s.end == len(s.buf) {
		// staging buffer is full of a single unconsumable message; can't happen
		// with a correctly sized buffer, but guard rather than loop forever.
		return 0, ErrTruncatedMessage
	}
	n, err := s.src.Read(s.buf[s.end:])
	if n > 0 {
		s.end += n
	}
	if err == io.EOF {
		err = nil
	}
	return n, err
}

// ensure guarantees at least n bytes are staged, refilling as needed.
// It returns false (no error) on a clean EOF with fewer than n bytes left.
func (s *Scanner) ensure(n int) (bool, error) {
	for s.available() < n {
		read, err := s.refill()
		if err != nil {
			return false, err
		}
		if read == 0 {
			return false, nil
		}
	}
	return true, nil
}

// Run decodes the entire stream, populating Companies and Sessions.
// It returns on clean EOF, or on the first fatal decode error
// (UnknownMessageError or ErrTruncatedMessage).
func (s *Scanner) Run() error {
	for {
		ok, err := s.ensure(1)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		disc := s.buf[s.pos]

		payloadSize, known := payloadSizes[disc]
		if !known {
			return &UnknownMessageError{Disc: disc, Offset: s.offset}
		}

		ok, err = s.ensure(1 + payloadSize)
		if err != nil {
			return err
		}
		if !ok {
			return ErrTruncatedMessage
		}

		payload := s.buf[s.pos+1 : s.pos+1+payloadSize]
		if err := s.dispatch(disc, payload); err != nil {
			return err
		}

		consumed := 1 + payloadSize
		s.pos += consumed
		s.offset += int64(consumed)
	}
}

// dispatch decodes a single message's payload, given its discriminant.
// The caller guarantees payload is exactly payloadSizes[disc] bytes.
func (s *Scanner) dispatch(disc byte, payload []byte) error {
	switch disc {
	case DiscSystemEvent:
		s.Sessions = append(s.Sessions, SystemEventCode(payload[len(payload)-1]))
		return nil

	case DiscAddOrder:
		return s.decodeAdd(payload, KindAdd)
	case DiscAddOrderMPID:
		return s.decodeAdd(payload, KindAddAttr)
	case DiscOrderCancel:
		return s.decodeCancel(payload)
	case DiscOrderDelete:
		return s.decodeDelete(payload)
	case DiscOrderExecuted:
		return s.decodeExecute(payload, KindExecuteAtOrderPrice)
	case DiscOrderExecutedWithPrice:
		return s.decodeExecute(payload, KindExecuteWithPrice)
	case DiscOrderReplace:
		return s.decodeReplace(payload)
	case DiscTrade:
		return s.decodeTrade(payload)

	default:
		// Informational message with no book effect: fixed footprint already
		// consumed by the caller via payloadSizes: nothing further to do.
		return nil
	}
}

// locateMiss reports whether locate is untracked and, if so, that the
// message should be dropped after its (already-sliced) payload is consumed.
// The scanner always slices the full fixed payload before calling a decode*
// method, so a miss here never leaves bytes undrained for the next message.
func (s *Scanner) locateMiss(locate uint16) bool {
	return !s.locates.Contains(locate)
}

func (s *Scanner) append(locate uint16, event DecodedEvent) {
	event.Locate = locate
	s.Companies[locate] = append(s.Companies[locate], event)
}

// decodeAdd handles 'A' (37) and 'F' (41): identical field layout through
// offset 31; 'F' carries 4 additional attribution bytes that are discarded.
func (s *Scanner) decodeAdd(p []byte, kind Kind) error {
	locate := beUint16(p[0:2])
	if s.locateMiss(locate) {
		return nil
	}
	s.append(locate, DecodedEvent{
		Kind:      kind,
		Timestamp: getU48(p[4:10]),
		OrderRef:  beUint64(p[10:18]),
		Side:      Side(p[18]),
		Shares:    beUint32(p[19:23]),
		Price:     beUint32(p[31:35]),
	})
	return nil
}

func (s *Scanner) decodeCancel(p []byte) error {
	locate := beUint16(p[0:2])
	if s.locateMiss(locate) {
		return nil
	}
	s.append(locate, DecodedEvent{
		Kind:            KindCancel,
		Timestamp:       getU48(p[4:10]),
		OrderRef:        beUint64(p[10:18]),
		CancelledShares: beUint32(p[18:22]),
	})
	return nil
}

func (s *Scanner) decodeDelete(p []byte) error {
	locate := beUint16(p[0:2])
	if s.locateMiss(locate) {
		return nil
	}
	s.append(locate, DecodedEvent{
		Kind:      KindDelete,
		Timestamp: getU48(p[4:10]),
		OrderRef:  beUint64(p[10:18]),
	})
	return nil
}

// decodeExecute handles 'E' (32) and 'C' (37). 'C' additionally carries a
// printable flag at @30 (unused for book maintenance per spec) and the
// executed price at @31.
func (s *Scanner) decodeExecute(p []byte, kind Kind) error {
	locate := beUint16(p[0:2])
	if s.locateMiss(locate) {
		return nil
	}
	event := DecodedEvent{
		Kind:           kind,
		Timestamp:      getU48(p[4:10]),
		OrderRef:       beUint64(p[10:18]),
		ExecutedShares: beUint32(p[18:22]),
	}
	if kind == KindExecuteWithPrice {
		event.ExecutedPrice = beUint32(p[31:35])
	}
	s.append(locate, event)
	return nil
}

func (s *Scanner) decodeReplace(p []byte) error {
	locate := beUint16(p[0:2])
	if s.locateMiss(locate) {
		return nil
	}
	s.append(locate, DecodedEvent{
		Kind:        KindReplace,
		Timestamp:   getU48(p[4:10]),
		OrderRef:    beUint64(p[10:18]),
		NewOrderRef: beUint64(p[18:26]),
		Shares:      beUint32(p[26:30]),
		Price:       beUint32(p[30:34]),
	})
	return nil
}

func (s *Scanner) decodeTrade(p []byte) error {
	locate := beUint16(p[0:2])
	if s.locateMiss(locate) {
		return nil
	}
	s.append(locate, DecodedEvent{
		Kind:      KindTrade,
		Timestamp: getU48(p[4:10]),
		OrderRef:  beUint64(p[10:18]),
		Side:      Side(p[18]),
		Shares:    beUint32(p[19:23]),
		Price:     beUint32(p[31:35]),
	})
	return nil
}
