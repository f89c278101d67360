package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidRecordJSON is returned when a record is not a JSON object.
var ErrInvalidRecordJSON = errors.New("record must be a JSON object")

// Record is one normalized row. Keys keep the order of the source columns.
// Values are nil, string or float64.
type Record struct {
	Columns []string
	Values  []any
}

// Get returns the value stored for column.
func (r Record) Get(column string) (any, bool) {
	for i, col := range r.Columns {
		if col == column {
			return r.Values[i], true
		}
	}

	return nil, false
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.Columns)
}

// MarshalJSON encodes the record as an object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	buf.WriteByte('{')

	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}

		if err := enc.Encode(col); err != nil {
			return nil, err
		}

		trimNewline(&buf)
		buf.WriteByte(':')

		if err := enc.Encode(r.Values[i]); err != nil {
			return nil, fmt.Errorf("column %q: %w", col, err)
		}

		trimNewline(&buf)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrInvalidRecordJSON
	}

	// Fresh slices: Columns is usually shared with the other records of a catalog.
	r.Columns = nil
	r.Values = nil

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("column %q: %w", key, err)
		}

		r.Columns = append(r.Columns, key)
		r.Values = append(r.Values, value)
	}

	_, err = dec.Token()

	return err
}

// Catalog is the ordered collection of normalized records produced by one run.
type Catalog struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}

	return len(c.Records)
}

// MarshalJSON encodes the catalog as a bare array of records.
func (c Catalog) MarshalJSON() ([]byte, error) {
	if len(c.Records) == 0 {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer

	buf.WriteByte('[')

	for i, rec := range c.Records {
		if i > 0 {
			buf.WriteByte(',')
		}

		data, err := rec.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		buf.Write(data)
	}

	buf.WriteByte(']')

	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an array of records. Columns is rebuilt from the keys
// in order of first appearance.
func (c *Catalog) UnmarshalJSON(data []byte) error {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}

	seen := make(map[string]bool)
	c.Columns = nil

	for _, rec := range records {
		for _, col := range rec.Columns {
			if !seen[col] {
				seen[col] = true
				c.Columns = append(c.Columns, col)
			}
		}
	}

	c.Records = records

	return nil
}

func trimNewline(buf *bytes.Buffer) {
	if n := buf.Len(); n > 0 && buf.Bytes()[n-1] == '\n' {
		buf.Truncate(n - 1)
	}
}
