// Package journal reads and writes postings.csv, the interchange format
// for proposed posting entries awaiting validation.
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/postguard-dev/postguard/internal/model"
)

// Header is the CSV header for postings.csv.
const Header = "account_code,account_type,amount,currency,description,reference"

const (
	numFields   = 6
	colCode     = 0
	colType     = 1
	colAmount   = 2
	colCurrency = 3
	colDesc     = 4
	colRef      = 5
)

// ReadEntries reads all proposed entries from a postings.csv reader.
func ReadEntries(r io.Reader) ([]model.Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading postings CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var entries []model.Entry
	for i, rec := range records[1:] {
		entry, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// WriteEntries writes entries to a postings.csv writer (including header).
func WriteEntries(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, entry := range entries {
		if err := cw.Write(MarshalEntry(entry)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalEntry converts an Entry to a CSV row ([]string).
func MarshalEntry(entry model.Entry) []string {
	row := make([]string, numFields)
	row[colCode] = entry.AccountCode
	row[colType] = string(entry.AccountType)
	row[colAmount] = entry.Amount.String()
	row[colCurrency] = entry.Currency
	row[colDesc] = entry.Description
	row[colRef] = entry.Reference
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (model.Entry, error) {
	if len(record) != numFields {
		return model.Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Entry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Entry{
		AccountCode: record[colCode],
		AccountType: model.AccountType(record[colType]),
		Amount:      amount,
		Currency:    record[colCurrency],
		Description: record[colDesc],
		Reference:   record[colRef],
	}, nil
}
