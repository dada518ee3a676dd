// Copyright (c) 2025 Neomantra Corp

package file

import (
	"fmt"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	pqfile "github.com/apache/arrow-go/v18/parquet/file"
	pqschema "github.com/apache/arrow-go/v18/parquet/schema"

	"github.com/marketfeeds/itch-go"
)

// WriteReplayAsParquet writes a symbol's decoded, book-annotated event log
// to a single Parquet row group. Unlike a multi-schema feed, every
// DecodedEvent shares one row shape, so there's a single GroupNode and a
// single row writer rather than one pair per message kind.
func WriteReplayAsParquet(destFile string, events []itch.DecodedEvent) error {
	outfile, outfileCloser, err := itch.MakeCompressedWriter(destFile, false)
	if err != nil {
		return fmt.Errorf("failed to create writer %w", err)
	}
	defer outfileCloser()

	pwProperties := parquet.NewWriterProperties(
		parquet.WithVersion(parquet.V2_LATEST),
		parquet.WithCompression(compress.Codecs.Snappy))

	pw := pqfile.NewParquetWriter(outfile, ParquetGroupNode_DecodedEvent(), pqfile.WithWriterProps(pwProperties))
	defer pw.Close()

	rgw := pw.AppendBufferedRowGroup()
	for i := range events {
		if err := ParquetWriteRow_DecodedEvent(rgw, &events[i]); err != nil {
			rgw.Close()
			return err
		}
	}
	rgw.Close()

	if err := pw.FlushWithFooter(); err != nil {
		return fmt.Errorf("failed to flush: %w", err)
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////

// ParquetGroupNode_DecodedEvent returns the Parquet schema's GroupNode for
// a single DecodedEvent row.
//
// optional int32 field_id=-1 kind (Int(bitWidth=8, isSigned=false));
// optional int64 field_id=-1 timestamp (Int(bitWidth=64, isSigned=false));
// optional int64 field_id=-1 order_ref (Int(bitWidth=64, isSigned=false));
// optional binary field_id=-1 side (String);
// optional int32 field_id=-1 shares (Int(bitWidth=32, isSigned=false));
// optional double field_id=-1 price;
// optional int32 field_id=-1 executed_shares (Int(bitWidth=32, isSigned=false));
// optional double field_id=-1 executed_price;
// optional int64 field_id=-1 new_order_ref (Int(bitWidth=64, isSigned=false));
// optional int32 field_id=-1 cancelled_shares (Int(bitWidth=32, isSigned=false));
// optional double field_id=-1 bid;
// optional double field_id=-1 ask;
// optional double field_id=-1 spread;
// optional int32 field_id=-1 bid_depth (Int(bitWidth=32, isSigned=false));
// optional int32 field_id=-1 ask_depth (Int(bitWidth=32, isSigned=false));
// optional int32 field_id=-1 depth (Int(bitWidth=32, isSigned=false));
func ParquetGroupNode_DecodedEvent() *pqschema.GroupNode {
	return pqschema.MustGroup(pqschema.NewGroupNode("schema", parquet.Repetitions.Required, pqschema.FieldList{
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("kind", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(8, false), parquet.Types.Int32, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("timestamp", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(64, false), parquet.Types.Int64, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("order_ref", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(64, false), parquet.Types.Int64, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeConverted("side", parquet.Repetitions.Optional, parquet.Types.ByteArray, pqschema.ConvertedTypes.UTF8, 0, 0, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("shares", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(32, false), parquet.Types.Int32, 0, -1)),
		pqschema.NewFloat64Node("price", parquet.Repetitions.Optional, -1),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("executed_shares", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(32, false), parquet.Types.Int32, 0, -1)),
		pqschema.NewFloat64Node("executed_price", parquet.Repetitions.Optional, -1),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("new_order_ref", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(64, false), parquet.Types.Int64, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("cancelled_shares", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(32, false), parquet.Types.Int32, 0, -1)),
		pqschema.NewFloat64Node("bid", parquet.Repetitions.Optional, -1),
		pqschema.NewFloat64Node("ask", parquet.Repetitions.Optional, -1),
		pqschema.NewFloat64Node("spread", parquet.Repetitions.Optional, -1),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("bid_depth", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(32, false), parquet.Types.Int32, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("ask_depth", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(32, false), parquet.Types.Int32, 0, -1)),
		pqschema.MustPrimitive(pqschema.NewPrimitiveNodeLogical("depth", parquet.Repetitions.Optional, pqschema.NewIntLogicalType(32, false), parquet.Types.Int32, 0, -1)),
	}, -1))
}

func ParquetWriteRow_DecodedEvent(rgw pqfile.BufferedRowGroupWriter, event *itch.DecodedEvent) error {
	cw, _ := rgw.Column(0)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.Kind)}, []int16{1}, nil)
	cw, _ = rgw.Column(1)
	cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch([]int64{int64(event.Timestamp)}, []int16{1}, nil)
	cw, _ = rgw.Column(2)
	cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch([]int64{int64(event.OrderRef)}, []int16{1}, nil)
	cw, _ = rgw.Column(3)
	cw.(*pqfile.ByteArrayColumnChunkWriter).WriteBatch([]parquet.ByteArray{parquet.ByteArray(event.Side.String())}, []int16{1}, nil)
	cw, _ = rgw.Column(4)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.Shares)}, []int16{1}, nil)
	cw, _ = rgw.Column(5)
	cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch([]float64{itch.PriceToFloat64(event.Price)}, []int16{1}, nil)
	cw, _ = rgw.Column(6)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.ExecutedShares)}, []int16{1}, nil)
	cw, _ = rgw.Column(7)
	cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch([]float64{itch.PriceToFloat64(event.ExecutedPrice)}, []int16{1}, nil)
	cw, _ = rgw.Column(8)
	cw.(*pqfile.Int64ColumnChunkWriter).WriteBatch([]int64{int64(event.NewOrderRef)}, []int16{1}, nil)
	cw, _ = rgw.Column(9)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.CancelledShares)}, []int16{1}, nil)
	cw, _ = rgw.Column(10)
	cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch([]float64{itch.PriceToFloat64(event.Bid)}, []int16{1}, nil)
	cw, _ = rgw.Column(11)
	cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch([]float64{itch.PriceToFloat64(event.Ask)}, []int16{1}, nil)
	cw, _ = rgw.Column(12)
	cw.(*pqfile.Float64ColumnChunkWriter).WriteBatch([]float64{itch.PriceToFloat64(event.Spread)}, []int16{1}, nil)
	cw, _ = rgw.Column(13)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.BidDepth)}, []int16{1}, nil)
	cw, _ = rgw.Column(14)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.AskDepth)}, []int16{1}, nil)
	cw, _ = rgw.Column(15)
	cw.(*pqfile.Int32ColumnChunkWriter).WriteBatch([]int32{int32(event.Depth)}, []int16{1}, nil)
	return nil
}
