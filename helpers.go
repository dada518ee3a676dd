// Copyright (c) 2024 Neomantra Corp

package itch

import (
	"encoding/binary"
	"time"
)

// PriceScale is the denominator of ITCH fixed-point prices (4 implied decimals).
const PriceScale float64 = 10000.0

// PriceToFloat64 converts a tick-unit ITCH price into a US-dollar float64.
func PriceToFloat64(price uint32) float64 {
	return float64(price) / PriceScale
}

// getU48 reads a 48-bit big-endian unsigned integer from b[0:6].
// ITCH timestamps are nanoseconds-since-midnight encoded in 6 bytes;
// encoding/binary has no native Uint48, so it is assembled by hand.
func getU48(b []byte) uint64 {
	_ = b[5]
	return uint64(b[0])<<40 | uint64(b[1])<<32 | uint64(b[2])<<24 |
		uint64(b[3])<<16 | uint64(b[4])<<8 | uint64(b[5])
}

// TimestampToDuration converts a 48-bit nanoseconds-since-midnight ITCH
// timestamp into the elapsed time.Duration since midnight.
func TimestampToDuration(ts uint64) time.Duration {
	return time.Duration(ts) * time.Nanosecond
}

// TimestampToTime converts a nanoseconds-since-midnight ITCH timestamp into
// a time.Time on the given session date (UTC).
func TimestampToTime(date time.Time, ts uint64) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return midnight.Add(TimestampToDuration(ts))
}

// beUint16, beUint32, beUint64 are thin aliases kept local to this package so
// that field-extraction code in scanner.go reads uniformly.
var (
	beUint16 = binary.BigEndian.Uint16
	beUint32 = binary.BigEndian.Uint32
	beUint64 = binary.BigEndian.Uint64
)
