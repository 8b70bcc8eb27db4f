package datasource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/edgeboard/internal/domain/table"
)

// DecodeCSV reads a headed CSV. Ragged rows are allowed; header names are
// trimmed and lowercased.
func DecodeCSV(r io.Reader) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return table.New(nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrDecode, err)
	}
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		rows = append(rows, rec)
	}
	return table.New(header, rows), nil
}
