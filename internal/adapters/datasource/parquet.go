package datasource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/okian/edgeboard/internal/domain/table"
)

const parquetBatch = 256

// DecodeParquet reads a flat parquet file into a table. Nested column paths
// are joined with "."; null values read as "".
func DecodeParquet(data []byte) (*table.Table, error) {
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open parquet: %v", ErrDecode, err)
	}

	paths := f.Schema().Columns()
	header := make([]string, len(paths))
	for i, p := range paths {
		header[i] = strings.ToLower(strings.Join(p, "."))
	}

	var out [][]string
	buf := make([]parquet.Row, parquetBatch)
	for _, rg := range f.RowGroups() {
		rows := rg.Rows()
		for {
			n, err := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				out = append(out, cells(row, len(header)))
			}
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("%w: read rows: %v", ErrDecode, err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, fmt.Errorf("%w: close rows: %v", ErrDecode, err)
		}
	}
	return table.New(header, out), nil
}

func cells(row parquet.Row, width int) []string {
	rec := make([]string, width)
	for _, v := range row {
		c := v.Column()
		if c < 0 || c >= width || v.IsNull() {
			continue
		}
		rec[c] = format(v)
	}
	return rec
}

func format(v parquet.Value) string {
	switch v.Kind() {
	case parquet.Boolean:
		return strconv.FormatBool(v.Boolean())
	case parquet.Int32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case parquet.Int64:
		return strconv.FormatInt(v.Int64(), 10)
	case parquet.Float:
		return strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case parquet.Double:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return string(v.ByteArray())
	default:
		return v.String()
	}
}
