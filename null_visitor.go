// Copyright (c) 2024 Neomantra Corp

package itch

// NullVisitor is a no-op implementation of the Visitor interface.
// It is useful for copy/pasting to ones own implementation.
type NullVisitor struct {
}

func (v *NullVisitor) OnAdd(event *DecodedEvent) error {
	return nil
}

func (v *NullVisitor) OnDelete(event *DecodedEvent) error {
	return nil
}

func (v *NullVisitor) OnCancel(event *DecodedEvent) error {
	return nil
}

func (v *NullVisitor) OnReplace(event *DecodedEvent) error {
	return nil
}

func (v *NullVisitor) OnExecute(event *DecodedEvent) error {
	return nil
}

func (v *NullVisitor) OnTrade(event *DecodedEvent) error {
	return nil
}

func (v *NullVisitor) OnSystemEvent(code SystemEventCode) error {
	return nil
}

func (v *NullVisitor) OnStreamEnd() error {
	return nil
}
