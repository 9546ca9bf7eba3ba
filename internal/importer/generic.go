package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finchat-dev/finchat/internal/model"
)

// GenericParser parses the plain finchat CSV layout:
// date,merchant,amount,category,account. Dates are ISO, amounts signed with
// the internal convention (negative = spend).
type GenericParser struct{}

const (
	genericNumFields   = 5
	genericColDate     = 0
	genericColMerchant = 1
	genericColAmount   = 2
	genericColCategory = 3
	genericColAccount  = 4
)

// Format returns the parser name.
func (p *GenericParser) Format() string { return "generic" }

// Parse reads the CSV and returns normalized transactions.
func (p *GenericParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = genericNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	seq := idSeq{}
	for i, rec := range records[1:] {
		txn, err := parseGenericRow(rec, seq)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseGenericRow(rec []string, seq idSeq) (model.Transaction, error) {
	date := strings.TrimSpace(rec[genericColDate])
	if _, err := time.Parse(model.DateFormat, date); err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[genericColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[genericColAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[genericColAmount], err)
	}

	category, ok := model.ParseCategory(rec[genericColCategory])
	if !ok {
		category = model.CategoryOther
	}

	merchant := strings.TrimSpace(rec[genericColMerchant])
	return model.Transaction{
		ID:       makeImportID("csv", date, merchant, amount, seq),
		Date:     date,
		Merchant: merchant,
		Amount:   amount,
		Category: category,
		Account:  strings.TrimSpace(rec[genericColAccount]),
	}, nil
}

// idSeq counts repeated (date, merchant, amount) rows within one file so
// each repeat gets a distinct ordinal. Rows keep their file order across
// re-imports, so the ordinals are stable.
type idSeq map[string]int

func (s idSeq) next(key string) int {
	n := s[key]
	s[key] = n + 1
	return n
}

// makeImportID creates a stable identifier like csv_20260102_WholeFoods_4567
// so re-importing the same file does not multiply transactions downstream.
// The amount and an ordinal for repeated rows keep two same-day purchases at
// the same merchant distinct.
func makeImportID(source, date, merchant string, amount decimal.Decimal, seq idSeq) string {
	prefix := strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, merchant)
	if len(prefix) > 10 {
		prefix = prefix[:10]
	}
	cents := strings.ReplaceAll(amount.Abs().StringFixed(2), ".", "")
	id := fmt.Sprintf("%s_%s_%s_%s", source, strings.ReplaceAll(date, "-", ""), prefix, cents)
	if n := seq.next(id); n > 0 {
		id = fmt.Sprintf("%s_%d", id, n+1)
	}
	return id
}
