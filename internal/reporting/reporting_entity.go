package reporting

import "github.com/shopspring/decimal"

// Notes compare each headline figure with the previous seven days.
type Notes struct {
	Sales    string `json:"sales"`
	Orders   string `json:"orders"`
	Expenses string `json:"expenses"`
}

type Stats struct {
	Sales    decimal.Decimal `json:"sales"`
	Orders   int64           `json:"orders"`
	Expenses decimal.Decimal `json:"expenses"`
	Branches int64           `json:"branches"`
	Products int64           `json:"products"`
	Salesmen int64           `json:"salesmen"`
	Notes    Notes           `json:"notes"`
}

type BranchMetrics struct {
	BranchID string          `json:"branchId"`
	Name     string          `json:"name"`
	Sales    decimal.Decimal `json:"sales"`
	Orders   int64           `json:"orders"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

type Point struct {
	Label string          `json:"label"`
	Sales decimal.Decimal `json:"sales"`
}

type StockLevel struct {
	BranchID string `json:"branchId"`
	Name     string `json:"name"`
	Units    int64  `json:"units"`
	LowStock int64  `json:"lowStock"`
}
