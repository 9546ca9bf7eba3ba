package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finchat-dev/finchat/internal/model"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("generic"))
	assert.NotNil(t, r.Get("chase"))
	assert.NotNil(t, r.Get("CHASE"))
	assert.Nil(t, r.Get("wells-fargo"))
	assert.ElementsMatch(t, []string{"generic", "chase"}, r.Formats())
}

func TestGenericParse(t *testing.T) {
	input := `date,merchant,amount,category,account
2026-01-02,Whole Foods Market,-45.67,groceries,Everyday Checking
2026-01-05,Acme Corp Payroll,2400.00,income,Everyday Checking
2026-01-06,Mystery Shop,-10.00,snacks,Everyday Checking
`
	txns, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "csv_20260102_WholeFoods_4567", txns[0].ID)
	assert.Equal(t, "2026-01-02", txns[0].Date)
	assert.Equal(t, model.CategoryGroceries, txns[0].Category)
	assert.Equal(t, "-45.67", txns[0].Amount.String())

	assert.Equal(t, model.CategoryIncome, txns[1].Category)

	// Unknown categories normalize to other.
	assert.Equal(t, model.CategoryOther, txns[2].Category)
}

func TestGenericParseBadDate(t *testing.T) {
	input := "date,merchant,amount,category,account\n01/02/2026,Shop,-1.00,other,Checking\n"
	_, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestGenericParseEmpty(t *testing.T) {
	txns, err := (&GenericParser{}).Parse(strings.NewReader("date,merchant,amount,category,account\n"))
	require.NoError(t, err)
	assert.Nil(t, txns)
}

func TestChaseParse(t *testing.T) {
	input := `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,01/03/2026,GITHUB INC,-10.00,ACH_DEBIT,1000.00,
CREDIT,01/05/2026,ACME PAYROLL,2400.00,ACH_CREDIT,3400.00,
`
	txns, err := (&ChaseParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "chase_20260103_GITHUBINC_1000", txns[0].ID)
	assert.Equal(t, "2026-01-03", txns[0].Date)
	assert.Equal(t, "GITHUB INC", txns[0].Merchant)
	assert.Equal(t, model.CategoryOther, txns[0].Category)
	assert.Equal(t, "2400", txns[1].Amount.String())
}

func TestGenericParseSameDayRepeatsStayDistinct(t *testing.T) {
	input := `date,merchant,amount,category,account
2026-01-05,Starbucks,-4.50,food,Everyday Checking
2026-01-05,Starbucks,-6.25,food,Everyday Checking
2026-01-05,Starbucks,-4.50,food,Everyday Checking
`
	txns, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 3)

	assert.Equal(t, "csv_20260105_Starbucks_450", txns[0].ID)
	assert.Equal(t, "csv_20260105_Starbucks_625", txns[1].ID)
	assert.Equal(t, "csv_20260105_Starbucks_450_2", txns[2].ID)
	assert.NotEqual(t, txns[0].ID, txns[1].ID)
	assert.NotEqual(t, txns[0].ID, txns[2].ID)
}

func TestGenericParseIDsStableAcrossReparse(t *testing.T) {
	input := `date,merchant,amount,category,account
2026-01-05,Starbucks,-4.50,food,Everyday Checking
2026-01-05,Starbucks,-4.50,food,Everyday Checking
`
	first, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	second, err := (&GenericParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestChaseParseSameDayRepeatsStayDistinct(t *testing.T) {
	input := `Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
DEBIT,01/03/2026,STARBUCKS,-4.50,ACH_DEBIT,1000.00,
DEBIT,01/03/2026,STARBUCKS,-4.50,ACH_DEBIT,995.50,
`
	txns, err := (&ChaseParser{}).Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.NotEqual(t, txns[0].ID, txns[1].ID)
}
