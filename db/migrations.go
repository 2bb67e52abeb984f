package db

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Migrate runs all table creation statements. Safe to call multiple times
// due to IF NOT EXISTS clauses.
func Migrate(db *sql.DB) error {
	slog.Info("running database migrations")

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w\nstatement: %s", err, stmt)
		}
	}

	slog.Info("database migrations complete")
	return nil
}

var migrations = []string{
	// Credit cards: revolving credit accounts
	`CREATE TABLE IF NOT EXISTS credit_cards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		credit_limit TEXT NOT NULL DEFAULT '0',
		interest_rate REAL NOT NULL DEFAULT 0,
		minimum_payment TEXT NOT NULL DEFAULT '0',
		due_date INTEGER NOT NULL CHECK(due_date BETWEEN 1 AND 31),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Loans: installment debts
	`CREATE TABLE IF NOT EXISTS loans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		original_amount TEXT NOT NULL DEFAULT '0',
		interest_rate REAL NOT NULL DEFAULT 0,
		monthly_payment TEXT NOT NULL DEFAULT '0',
		term_months INTEGER NOT NULL DEFAULT 0,
		due_date INTEGER NOT NULL CHECK(due_date BETWEEN 1 AND 31),
		loan_type TEXT NOT NULL CHECK(loan_type IN ('personal', 'auto', 'student', 'mortgage', 'business')),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Income sources
	`CREATE TABLE IF NOT EXISTS incomes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		source TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		frequency TEXT NOT NULL CHECK(frequency IN ('weekly', 'biweekly', 'monthly', 'yearly')),
		next_pay_date DATE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Expenses, optionally recurring, optionally linked to an income source
	`CREATE TABLE IF NOT EXISTS expenses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		description TEXT NOT NULL,
		amount TEXT NOT NULL DEFAULT '0',
		category TEXT NOT NULL,
		expense_date DATE,
		payment_method TEXT,
		is_recurring INTEGER NOT NULL DEFAULT 0,
		income_id INTEGER,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (income_id) REFERENCES incomes(id) ON DELETE SET NULL
	)`,

	// Assets
	`CREATE TABLE IF NOT EXISTS assets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		current_value TEXT NOT NULL DEFAULT '0',
		is_liquid INTEGER NOT NULL DEFAULT 0,
		growth_rate REAL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Liabilities: non-installment obligations
	`CREATE TABLE IF NOT EXISTS liabilities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		liability_type TEXT NOT NULL,
		current_balance TEXT NOT NULL DEFAULT '0',
		interest_rate REAL NOT NULL DEFAULT 0,
		payment_frequency TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Budgets: one allocation per category per month
	`CREATE TABLE IF NOT EXISTS budgets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		category TEXT NOT NULL,
		monthly_allocation TEXT NOT NULL DEFAULT '0',
		alert_threshold REAL NOT NULL DEFAULT 80,
		budget_month TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(user_id, category, budget_month)
	)`,

	// Savings goals
	`CREATE TABLE IF NOT EXISTS savings_goals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		target_amount TEXT NOT NULL DEFAULT '0',
		current_amount TEXT NOT NULL DEFAULT '0',
		monthly_contribution TEXT NOT NULL DEFAULT '0',
		target_date DATE,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Investment accounts
	`CREATE TABLE IF NOT EXISTS investments (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		account_name TEXT NOT NULL,
		account_type TEXT NOT NULL,
		balance TEXT NOT NULL DEFAULT '0',
		contribution_amount TEXT NOT NULL DEFAULT '0',
		contribution_frequency TEXT,
		expected_return REAL NOT NULL DEFAULT 0,
		risk_level TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Vendors referenced by purchase orders
	`CREATE TABLE IF NOT EXISTS vendors (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		name TEXT NOT NULL,
		email TEXT,
		phone TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	// Purchase orders; totals are computed from line items, never stored
	`CREATE TABLE IF NOT EXISTS purchase_orders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id TEXT NOT NULL,
		vendor_id INTEGER,
		status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'ordered', 'received', 'cancelled')),
		order_date DATE,
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (vendor_id) REFERENCES vendors(id) ON DELETE SET NULL
	)`,

	`CREATE TABLE IF NOT EXISTS purchase_order_items (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		purchase_order_id INTEGER NOT NULL,
		description TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK(quantity > 0),
		unit_price TEXT NOT NULL DEFAULT '0',
		FOREIGN KEY (purchase_order_id) REFERENCES purchase_orders(id) ON DELETE CASCADE
	)`,

	// Indexes for common queries
	`CREATE INDEX IF NOT EXISTS idx_credit_cards_user ON credit_cards(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_user ON loans(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_incomes_user ON incomes(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(user_id, category)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(user_id, expense_date)`,
	`CREATE INDEX IF NOT EXISTS idx_assets_user ON assets(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_liabilities_user ON liabilities(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_budgets_user ON budgets(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_savings_goals_user ON savings_goals(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_investments_user ON investments(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_vendors_user ON vendors(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_user ON purchase_orders(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_purchase_orders_vendor ON purchase_orders(vendor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_po_items_po ON purchase_order_items(purchase_order_id)`,
}
