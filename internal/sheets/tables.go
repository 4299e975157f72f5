package sheets

import "financas/internal/core"

// Table names consumed and produced by the services. Monthly archive tabs
// are named dynamically via core.ArchiveName and are not listed here.
const (
	TableUsers            = "users"
	TableCategories       = "categories"
	TableFixedTemplates   = "fixed_templates"
	TableIncomeTemplates  = "income_templates"
	TableFixedExpenses    = "fixed_expenses"
	TablePersonalExpenses = "personal_expenses"
	TableIncomes          = "incomes"
	TableProcessedMonths  = "processed_months"
)

// Columns of the processed-months ledger.
const (
	ColMonth       = "month"
	ColGeneratedAt = "generated_at"
)

// ColEntryName is the single column of the users and categories tables.
const ColEntryName = "name"

// requiredHeaders is the header every required table must carry. The
// bootstrap (EnsureHeaders on the adapters that support it) creates missing
// tables and repairs wrong headers from this map.
var requiredHeaders = map[string][]string{
	TableUsers:      {ColEntryName},
	TableCategories: {ColEntryName},

	// Recurring templates, materialized into a record once per month.
	TableFixedTemplates:  {core.ColID, core.ColName, core.ColAmount, core.ColCategory, core.ColUser},
	TableIncomeTemplates: {core.ColID, core.ColName, core.ColAmount},

	TableFixedExpenses:    core.RecordColumns,
	TablePersonalExpenses: core.RecordColumns,
	TableIncomes:          {core.ColID, core.ColName, core.ColAmount, core.ColDate, core.ColTime},

	// Internal ledger gating one-time-per-month generation.
	TableProcessedMonths: {ColMonth, ColGeneratedAt},
}

// HeaderFor returns the canonical header for a table name. Unknown names
// (the monthly archive tabs) get the full record layout.
func HeaderFor(name string) []string {
	if h, ok := requiredHeaders[name]; ok {
		return h
	}
	return core.RecordColumns
}

// RequiredTables lists the tables the bootstrap must guarantee, in a
// stable order.
func RequiredTables() []string {
	return []string{
		TableUsers,
		TableCategories,
		TableFixedTemplates,
		TableIncomeTemplates,
		TableFixedExpenses,
		TableIncomes,
		TablePersonalExpenses,
		TableProcessedMonths,
	}
}
