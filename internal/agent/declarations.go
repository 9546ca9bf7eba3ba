package agent

import (
	"google.golang.org/genai"

	"github.com/finchat-dev/finchat/internal/model"
)

func categoryEnum() []string {
	cats := model.Categories()
	out := make([]string, len(cats))
	for i, c := range cats {
		out[i] = string(c)
	}
	return out
}

func dateSchema(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc + " (YYYY-MM-DD)"}
}

// functionDeclarations describes the tool runtime's operations to the model.
// Names and parameter shapes are fixed; the user identifier is never part of
// a schema because the model must not choose whose data it reads.
func functionDeclarations() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        "get_balance",
			Description: "Get the user's total balances: checking, credit owed, and net worth.",
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		},
		{
			Name:        "get_spending_summary",
			Description: "Get spending totals grouped by category, optionally bounded by dates.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"start_date": dateSchema("inclusive start date"),
					"end_date":   dateSchema("inclusive end date"),
				},
			},
		},
		{
			Name:        "get_income_summary",
			Description: "Get total income received, optionally bounded by dates.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"start_date": dateSchema("inclusive start date"),
					"end_date":   dateSchema("inclusive end date"),
				},
			},
		},
		{
			Name:        "search_transactions",
			Description: "Search transactions by category, merchant, date range, amount range, or account.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category":   {Type: genai.TypeString, Enum: categoryEnum()},
					"merchant":   {Type: genai.TypeString, Description: "merchant name substring"},
					"start_date": dateSchema("inclusive start date"),
					"end_date":   dateSchema("inclusive end date"),
					"min_amount": {Type: genai.TypeNumber, Description: "inclusive lower bound on signed amount"},
					"max_amount": {Type: genai.TypeNumber, Description: "inclusive upper bound on signed amount"},
					"account":    {Type: genai.TypeString, Description: "account name substring"},
					"limit":      {Type: genai.TypeInteger, Description: "max results, default 10"},
				},
			},
		},
		{
			Name:        "get_category_spending",
			Description: "Get total spending in one category with the matching transactions.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"category": {Type: genai.TypeString, Enum: categoryEnum()},
				},
				Required: []string{"category"},
			},
		},
		{
			Name:        "get_recent_transactions",
			Description: "Get the most recent transactions across all categories.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {Type: genai.TypeInteger, Description: "max results, default 10"},
				},
			},
		},
		{
			Name:        "get_accounts",
			Description: "List the user's bank accounts with balances.",
			Parameters:  &genai.Schema{Type: genai.TypeObject, Properties: map[string]*genai.Schema{}},
		},
	}
}
