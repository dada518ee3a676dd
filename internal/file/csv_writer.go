// Copyright (c) 2024 Neomantra Corp

package file

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/marketfeeds/itch-go"
)

// CsvHeader is the column order written by CsvWriterVisitor, matching the
// output record fields.
var CsvHeader = []string{
	"kind", "timestamp", "order_ref", "side", "shares", "price",
	"executed_shares", "executed_price", "new_order_ref", "cancelled_shares",
	"bid", "ask", "spread", "bid_depth", "ask_depth", "depth",
}

// CsvWriterVisitor writes each visited DecodedEvent as one CSV row.
// It is the default emitter for a replay; the header row is written once,
// so every symbol visited through one CsvWriterVisitor shares one CSV.
type CsvWriterVisitor struct {
	w *csv.Writer
}

// NewCsvWriterVisitor wraps w, writing the header row immediately.
func NewCsvWriterVisitor(w io.Writer) (*CsvWriterVisitor, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(CsvHeader); err != nil {
		return nil, err
	}
	return &CsvWriterVisitor{w: cw}, nil
}

func fmtU64(v uint64) string { return strconv.FormatUint(v, 10) }
func fmtU32(v uint32) string { return strconv.FormatUint(uint64(v), 10) }

func (v *CsvWriterVisitor) writeRow(event *itch.DecodedEvent) error {
	return v.w.Write([]string{
		event.Kind.String(),
		fmtU64(event.Timestamp),
		fmtU64(event.OrderRef),
		event.Side.String(),
		fmtU32(event.Shares),
		fmtU32(event.Price),
		fmtU32(event.ExecutedShares),
		fmtU32(event.ExecutedPrice),
		fmtU64(event.NewOrderRef),
		fmtU32(event.CancelledShares),
		fmtU32(event.Bid),
		fmtU32(event.Ask),
		fmtU32(event.Spread),
		fmtU32(event.BidDepth),
		fmtU32(event.AskDepth),
		fmtU32(event.Depth),
	})
}

func (v *CsvWriterVisitor) OnAdd(event *itch.DecodedEvent) error      { return v.writeRow(event) }
func (v *CsvWriterVisitor) OnDelete(event *itch.DecodedEvent) error   { return v.writeRow(event) }
func (v *CsvWriterVisitor) OnCancel(event *itch.DecodedEvent) error   { return v.writeRow(event) }
func (v *CsvWriterVisitor) OnReplace(event *itch.DecodedEvent) error  { return v.writeRow(event) }
func (v *CsvWriterVisitor) OnExecute(event *itch.DecodedEvent) error  { return v.writeRow(event) }
func (v *CsvWriterVisitor) OnTrade(event *itch.DecodedEvent) error    { return v.writeRow(event) }

func (v *CsvWriterVisitor) OnSystemEvent(code itch.SystemEventCode) error { return nil }

func (v *CsvWriterVisitor) OnStreamEnd() error {
	v.w.Flush()
	return v.w.Error()
}
