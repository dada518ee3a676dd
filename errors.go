// Copyright (c) 2024 Neomantra Corp

package itch

import "fmt"

var ErrTruncatedMessage = fmt.Errorf("truncated message: EOF before payload completed")

// UnknownMessageError is returned when the scanner encounters a discriminant
// byte it does not recognize. The stream is considered misaligned from this
// point forward and decoding cannot safely continue.
type UnknownMessageError struct {
	Disc   byte
	Offset int64
}

func (e *UnknownMessageError) Error() string {
	return fmt.Sprintf("unknown message discriminant %q (0x%02x) at offset %d", rune(e.Disc), e.Disc, e.Offset)
}
