// Copyright (c) 2024 Neomantra Corp

package file

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/marketfeeds/itch-go"
)

// WriteAsJson marshals val as one JSON line, trailed by a newline, to writer.
func WriteAsJson[T any](val *T, writer io.Writer) error {
	bytes, err := json.Marshal(val)
	if err != nil {
		return err
	}
	if _, err := writer.Write(bytes); err != nil {
		return err
	}
	_, err = writer.Write([]byte("\n"))
	return err
}

// JsonWriterVisitor writes each visited DecodedEvent as one line of JSON
// (JSON Lines), using segmentio/encoding/json for speed on a hot output path.
type JsonWriterVisitor struct {
	Writer io.Writer
}

func (v *JsonWriterVisitor) OnAdd(event *itch.DecodedEvent) error     { return WriteAsJson(event, v.Writer) }
func (v *JsonWriterVisitor) OnDelete(event *itch.DecodedEvent) error  { return WriteAsJson(event, v.Writer) }
func (v *JsonWriterVisitor) OnCancel(event *itch.DecodedEvent) error  { return WriteAsJson(event, v.Writer) }
func (v *JsonWriterVisitor) OnReplace(event *itch.DecodedEvent) error { return WriteAsJson(event, v.Writer) }
func (v *JsonWriterVisitor) OnExecute(event *itch.DecodedEvent) error { return WriteAsJson(event, v.Writer) }
func (v *JsonWriterVisitor) OnTrade(event *itch.DecodedEvent) error   { return WriteAsJson(event, v.Writer) }

func (v *JsonWriterVisitor) OnSystemEvent(code itch.SystemEventCode) error { return nil }
func (v *JsonWriterVisitor) OnStreamEnd() error                           { return nil }
