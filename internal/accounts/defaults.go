package accounts

import "github.com/postguard-dev/postguard/internal/model"

// DefaultChart returns a starter chart of accounts aligned with the
// numeric-range convention the classifier expects.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1100", Name: "Cash", Type: model.AccountTypeAsset, Description: "Cash and bank accounts"},
		{Code: "1101", Name: "Cash (EUR)", Type: model.AccountTypeAsset, Description: "Euro-denominated cash"},
		{Code: "1200", Name: "Accounts Receivable", Type: model.AccountTypeAsset},
		{Code: "2100", Name: "Accounts Payable", Type: model.AccountTypeLiability},
		{Code: "2400", Name: "Deferred Revenue", Type: model.AccountTypeLiability, Description: "Unfulfilled payment obligations"},
		{Code: "3100", Name: "Owner's Equity", Type: model.AccountTypeEquity},
		{Code: "3200", Name: "Currency Conversion", Type: model.AccountTypeEquity, Description: "FX equity conversion entries"},
		{Code: "4000", Name: "Service Revenue", Type: model.AccountTypeRevenue},
		{Code: "4001", Name: "Service Revenue (EUR)", Type: model.AccountTypeRevenue},
		{Code: "5100", Name: "Payment Processing Fees", Type: model.AccountTypeExpense, Description: "Processor and FX fees"},
		{Code: "5200", Name: "Fulfillment Costs", Type: model.AccountTypeExpense},
	}
}
