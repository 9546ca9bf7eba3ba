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

// ChaseParser parses Chase bank checking CSV exports. Chase reports no
// category taxonomy, so everything imports as CategoryOther.
type ChaseParser struct{}

const (
	chaseDateFormat = "01/02/2006"
	chaseNumFields  = 7
	chaseColDate    = 1
	chaseColDesc    = 2
	chaseColAmount  = 3
)

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns normalized transactions.
func (p *ChaseParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = chaseNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var txns []model.Transaction
	seq := idSeq{}
	for i, rec := range records[1:] {
		txn, err := parseChaseRow(rec, seq)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func parseChaseRow(rec []string, seq idSeq) (model.Transaction, error) {
	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[chaseColDate]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", rec[chaseColDate], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[chaseColAmount]))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", rec[chaseColAmount], err)
	}

	isoDate := date.Format(model.DateFormat)
	desc := strings.TrimSpace(rec[chaseColDesc])
	return model.Transaction{
		ID:       makeImportID("chase", isoDate, desc, amount, seq),
		Date:     isoDate,
		Merchant: desc,
		Amount:   amount,
		Category: model.CategoryOther,
		Account:  "Chase Checking",
	}, nil
}
