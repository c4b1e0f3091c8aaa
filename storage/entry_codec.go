package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alekLukanen/errs"
	"github.com/alekLukanen/ndarrow/elements"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/decimal128"
	"github.com/apache/arrow/go/v17/arrow/float16"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/linkedin/goavro/v2"
)

// entryHeader is the metadata stored next to the values of an entry.
type entryHeader struct {
	kind      elements.Kind
	shape     []int
	unit      arrow.TimeUnit
	precision int32
	scale     int32
}

func headerOf(arr *elements.Array) entryHeader {
	h := entryHeader{kind: arr.Kind(), shape: arr.Shape()}
	switch dt := arr.Values().DataType().(type) {
	case *arrow.TimestampType:
		h.unit = dt.Unit
	case *arrow.Decimal128Type:
		h.precision, h.scale = dt.Precision, dt.Scale
	}
	return h
}

func (obj entryHeader) metadata() (map[string]string, error) {
	shape, err := json.Marshal(obj.shape)
	if err != nil {
		return nil, errs.Wrap(err)
	}
	md := map[string]string{
		metaKind:  obj.kind.String(),
		metaShape: string(shape),
	}
	switch obj.kind {
	case elements.KindTimestamp:
		md[metaUnit] = obj.unit.String()
	case elements.KindDecimal:
		md[metaPrecision] = strconv.Itoa(int(obj.precision))
		md[metaScale] = strconv.Itoa(int(obj.scale))
	}
	return md, nil
}

func parseHeader(md map[string]string) (entryHeader, error) {
	corrupt := func(what string) error {
		return elements.NewStackError(fmt.Errorf("%w| entry metadata %s", ErrEntryCorrupt, what))
	}

	kind, ok := elements.ParseKind(md[metaKind])
	if !ok {
		return entryHeader{}, corrupt("kind " + strconv.Quote(md[metaKind]))
	}
	h := entryHeader{kind: kind}
	if err := json.Unmarshal([]byte(md[metaShape]), &h.shape); err != nil || h.shape == nil {
		return entryHeader{}, corrupt("shape " + strconv.Quote(md[metaShape]))
	}

	switch kind {
	case elements.KindTimestamp:
		found := false
		for _, unit := range []arrow.TimeUnit{arrow.Second, arrow.Millisecond, arrow.Microsecond, arrow.Nanosecond} {
			if unit.String() == md[metaUnit] {
				h.unit, found = unit, true
			}
		}
		if !found {
			return entryHeader{}, corrupt("unit " + strconv.Quote(md[metaUnit]))
		}
	case elements.KindDecimal:
		precision, err1 := strconv.Atoi(md[metaPrecision])
		scale, err2 := strconv.Atoi(md[metaScale])
		if err1 != nil || err2 != nil {
			return entryHeader{}, corrupt("decimal precision/scale")
		}
		h.precision, h.scale = int32(precision), int32(scale)
	}
	return h, nil
}

func (obj entryHeader) dataType() (arrow.DataType, error) {
	switch obj.kind {
	case elements.KindTimestamp:
		return &arrow.TimestampType{Unit: obj.unit}, nil
	case elements.KindDecimal:
		return &arrow.Decimal128Type{Precision: obj.precision, Scale: obj.scale}, nil
	}
	return obj.kind.DataType()
}

func encodeEntry(mem memory.Allocator, arr *elements.Array, enc Encoding) ([]byte, error) {
	if arr.Kind() == elements.KindObject {
		return nil, elements.NewStackError(fmt.Errorf("%w| object arrays cannot be archived", elements.ErrUnsupportedType))
	}
	switch enc {
	case EncodingArrowIPC:
		return encodeIPC(mem, arr)
	case EncodingAvro:
		return encodeAvro(arr)
	}
	return nil, elements.NewStackError(fmt.Errorf("%w| %s", ErrUnknownEncoding, enc))
}

func decodeEntry(mem memory.Allocator, payload []byte, enc Encoding) (*elements.Array, error) {
	switch enc {
	case EncodingArrowIPC:
		return decodeIPC(mem, payload)
	case EncodingAvro:
		return decodeAvro(mem, payload)
	}
	return nil, elements.NewStackError(fmt.Errorf("%w| %s", ErrUnknownEncoding, enc))
}

/*
* encodeIPC writes the flat values as the single column of a single
* record in an Arrow IPC stream. Kind and shape live in the schema
* metadata.
 */
func encodeIPC(mem memory.Allocator, arr *elements.Array) ([]byte, error) {
	md, err := headerOf(arr).metadata()
	if err != nil {
		return nil, err
	}
	meta := arrow.MetadataFrom(md)
	schema := arrow.NewSchema(
		[]arrow.Field{{Name: "value", Type: arr.Values().DataType(), Nullable: true}},
		&meta,
	)
	rec := array.NewRecord(schema, []arrow.Array{arr.Values()}, int64(arr.Len()))
	defer rec.Release()

	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, errs.Wrap(err)
	}
	if err := w.Close(); err != nil {
		return nil, errs.Wrap(err)
	}
	return buf.Bytes(), nil
}

func decodeIPC(mem memory.Allocator, payload []byte) (*elements.Array, error) {
	r, err := ipc.NewReader(bytes.NewReader(payload), ipc.WithAllocator(mem))
	if err != nil {
		return nil, elements.NewStackError(fmt.Errorf("%w| arrow ipc: %s", ErrEntryCorrupt, err))
	}
	defer r.Release()

	schemaMeta := r.Schema().Metadata()
	md := make(map[string]string, schemaMeta.Len())
	for i, key := range schemaMeta.Keys() {
		md[key] = schemaMeta.Values()[i]
	}
	h, err := parseHeader(md)
	if err != nil {
		return nil, err
	}
	if r.Schema().NumFields() != 1 {
		return nil, elements.NewStackError(
			fmt.Errorf("%w| expected one column, found %d", ErrEntryCorrupt, r.Schema().NumFields()),
		)
	}

	if !r.Next() {
		return nil, elements.NewStackError(fmt.Errorf("%w| arrow ipc: no record: %v", ErrEntryCorrupt, r.Err()))
	}
	arr, err := elements.NewArrayWithShape(r.Record().Column(0), h.shape)
	if err != nil {
		return nil, err
	}
	if r.Next() {
		arr.Release()
		return nil, elements.NewStackError(fmt.Errorf("%w| arrow ipc: more than one record", ErrEntryCorrupt))
	}
	if err := r.Err(); err != nil {
		arr.Release()
		return nil, elements.NewStackError(fmt.Errorf("%w| arrow ipc: %s", ErrEntryCorrupt, err))
	}
	return arr, nil
}

// avroType is the Avro schema of one value of the kind. Unsigned 64-bit
// values travel as their two's complement bit pattern and decimals as
// their text form.
func avroType(kind elements.Kind) (any, string, error) {
	switch kind {
	case elements.KindBool:
		return "boolean", "boolean", nil
	case elements.KindInt8, elements.KindInt16, elements.KindInt32:
		return "int", "int", nil
	case elements.KindInt64, elements.KindUint8, elements.KindUint16, elements.KindUint32,
		elements.KindUint64, elements.KindTimestamp:
		return "long", "long", nil
	case elements.KindFloat16, elements.KindFloat32:
		return "float", "float", nil
	case elements.KindFloat64:
		return "double", "double", nil
	case elements.KindComplex64, elements.KindComplex128:
		return map[string]any{
			"type": "record",
			"name": "complex",
			"fields": []map[string]any{
				{"name": "re", "type": "double"},
				{"name": "im", "type": "double"},
			},
		}, "complex", nil
	case elements.KindDecimal, elements.KindString:
		return "string", "string", nil
	case elements.KindBinary:
		return "bytes", "bytes", nil
	}
	return nil, "", elements.NewStackError(fmt.Errorf("%w| kind %s in avro", elements.ErrUnsupportedType, kind))
}

func avroCodec(kind elements.Kind) (*goavro.Codec, string, error) {
	valueType, branch, err := avroType(kind)
	if err != nil {
		return nil, "", err
	}
	schema := map[string]any{
		"type": "record",
		"name": "entry",
		"fields": []map[string]any{
			{"name": "value", "type": []any{"null", valueType}},
		},
	}
	schemaData, err := json.Marshal(schema)
	if err != nil {
		return nil, "", errs.Wrap(err)
	}
	codec, err := goavro.NewCodec(string(schemaData))
	if err != nil {
		return nil, "", errs.Wrap(err)
	}
	return codec, branch, nil
}

/*
* encodeAvro writes one {"value": ...} row per element into an Avro object
* container file. Kind, shape and type parameters live in the file
* metadata.
 */
func encodeAvro(arr *elements.Array) ([]byte, error) {
	h := headerOf(arr)
	codec, branch, err := avroCodec(h.kind)
	if err != nil {
		return nil, err
	}
	md, err := h.metadata()
	if err != nil {
		return nil, err
	}
	ocfMeta := make(map[string][]byte, len(md))
	for k, v := range md {
		ocfMeta[k] = []byte(v)
	}

	var buf bytes.Buffer
	w, err := goavro.NewOCFWriter(goavro.OCFConfig{
		W:               &buf,
		Codec:           codec,
		CompressionName: goavro.CompressionNullLabel,
		MetaData:        ocfMeta,
	})
	if err != nil {
		return nil, errs.Wrap(err)
	}

	rows := make([]any, arr.Len())
	for i := range rows {
		if arr.IsNull(i) {
			rows[i] = map[string]any{"value": nil}
			continue
		}
		rows[i] = map[string]any{"value": goavro.Union(branch, avroNative(h, arr.ScalarAt(i)))}
	}
	if len(rows) == 0 {
		return buf.Bytes(), nil
	}
	if err := w.Append(rows); err != nil {
		return nil, errs.Wrap(err)
	}
	return buf.Bytes(), nil
}

func avroNative(h entryHeader, s elements.Scalar) any {
	switch {
	case h.kind == elements.KindBool:
		return s.Bool()
	case h.kind.IsSigned() && h.kind != elements.KindInt64:
		return int32(s.Int())
	case h.kind == elements.KindInt64:
		return s.Int()
	case h.kind.IsUnsigned():
		return int64(s.Uint())
	case h.kind.IsFloat() && h.kind != elements.KindFloat64:
		return float32(s.Float())
	case h.kind == elements.KindFloat64:
		return s.Float()
	case h.kind.IsComplex():
		c := s.Complex()
		return map[string]any{"re": real(c), "im": imag(c)}
	case h.kind == elements.KindDecimal:
		num, scale := s.Decimal()
		return num.ToString(scale)
	case h.kind == elements.KindTimestamp:
		ts, _ := s.Timestamp()
		return int64(ts)
	case h.kind == elements.KindString:
		return s.Text()
	}
	return s.Bytes()
}

func decodeAvro(mem memory.Allocator, payload []byte) (*elements.Array, error) {
	r, err := goavro.NewOCFReader(bytes.NewReader(payload))
	if err != nil {
		return nil, elements.NewStackError(fmt.Errorf("%w| avro: %s", ErrEntryCorrupt, err))
	}
	md := make(map[string]string)
	for k, v := range r.MetaData() {
		md[k] = string(v)
	}
	h, err := parseHeader(md)
	if err != nil {
		return nil, err
	}
	dt, err := h.dataType()
	if err != nil {
		return nil, err
	}

	b := array.NewBuilder(mem, dt)
	defer b.Release()
	for r.Scan() {
		row, err := r.Read()
		if err != nil {
			return nil, elements.NewStackError(fmt.Errorf("%w| avro: %s", ErrEntryCorrupt, err))
		}
		if err := appendAvro(b, h, row); err != nil {
			return nil, err
		}
	}
	if err := r.Err(); err != nil {
		return nil, elements.NewStackError(fmt.Errorf("%w| avro: %s", ErrEntryCorrupt, err))
	}

	values := b.NewArray()
	defer values.Release()
	return elements.NewArrayWithShape(values, h.shape)
}

func appendAvro(b array.Builder, h entryHeader, row any) error {
	corrupt := func() error {
		return elements.NewStackError(fmt.Errorf("%w| avro row %v for %s", ErrEntryCorrupt, row, h.kind))
	}

	record, ok := row.(map[string]any)
	if !ok {
		return corrupt()
	}
	union, ok := record["value"].(map[string]any)
	if !ok {
		b.AppendNull()
		return nil
	}
	var value any
	for _, v := range union {
		value = v
	}

	ok = true
	switch bb := b.(type) {
	case *array.BooleanBuilder:
		v, isType := value.(bool)
		ok = isType
		bb.Append(v)
	case *array.Int8Builder:
		v, isType := value.(int32)
		ok = isType
		bb.Append(int8(v))
	case *array.Int16Builder:
		v, isType := value.(int32)
		ok = isType
		bb.Append(int16(v))
	case *array.Int32Builder:
		v, isType := value.(int32)
		ok = isType
		bb.Append(v)
	case *array.Int64Builder:
		v, isType := value.(int64)
		ok = isType
		bb.Append(v)
	case *array.Uint8Builder:
		v, isType := value.(int64)
		ok = isType
		bb.Append(uint8(v))
	case *array.Uint16Builder:
		v, isType := value.(int64)
		ok = isType
		bb.Append(uint16(v))
	case *array.Uint32Builder:
		v, isType := value.(int64)
		ok = isType
		bb.Append(uint32(v))
	case *array.Uint64Builder:
		v, isType := value.(int64)
		ok = isType
		bb.Append(uint64(v))
	case *array.Float16Builder:
		v, isType := value.(float32)
		ok = isType
		bb.Append(float16.New(v))
	case *array.Float32Builder:
		v, isType := value.(float32)
		ok = isType
		bb.Append(v)
	case *array.Float64Builder:
		v, isType := value.(float64)
		ok = isType
		bb.Append(v)
	case *array.FixedSizeListBuilder:
		parts, isType := value.(map[string]any)
		re, reOK := parts["re"].(float64)
		im, imOK := parts["im"].(float64)
		ok = isType && reOK && imOK
		bb.Append(true)
		switch vb := bb.ValueBuilder().(type) {
		case *array.Float32Builder:
			vb.Append(float32(re))
			vb.Append(float32(im))
		case *array.Float64Builder:
			vb.Append(re)
			vb.Append(im)
		}
	case *array.Decimal128Builder:
		v, isType := value.(string)
		num, err := decimal128.FromString(v, h.precision, h.scale)
		ok = isType && err == nil
		bb.Append(num)
	case *array.TimestampBuilder:
		v, isType := value.(int64)
		ok = isType
		bb.Append(arrow.Timestamp(v))
	case *array.StringBuilder:
		v, isType := value.(string)
		ok = isType
		bb.Append(v)
	case *array.BinaryBuilder:
		v, isType := value.([]byte)
		ok = isType
		bb.Append(v)
	default:
		ok = false
	}
	if !ok {
		return corrupt()
	}
	return nil
}
