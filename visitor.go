// Copyright (c) 2024 Neomantra Corp

package itch

// Visitor receives decoded, book-annotated events as a replay progresses.
// Implementations are called in wire order per locate.
type Visitor interface {
	OnAdd(event *DecodedEvent) error
	OnDelete(event *DecodedEvent) error
	OnCancel(event *DecodedEvent) error
	OnReplace(event *DecodedEvent) error
	OnExecute(event *DecodedEvent) error
	OnTrade(event *DecodedEvent) error

	OnSystemEvent(code SystemEventCode) error
	OnStreamEnd() error
}
