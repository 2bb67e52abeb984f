package jobs

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fintrack-app/fintrack/config"
	"github.com/fintrack-app/fintrack/db"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "jobs.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// No SMTP configured: sweeps must log and skip, never error.
	return NewScheduler(database, &config.Config{ReminderCron: "0 8 * * *", ReminderDays: 3})
}

func TestPaymentReminderSweepWithoutSMTP(t *testing.T) {
	s := newTestScheduler(t)

	_, err := s.db.Exec(`INSERT INTO credit_cards (user_id, name, balance, credit_limit, minimum_payment, due_date)
		VALUES ('local', 'Visa', '500', '1000', '25', ?)`, time.Now().AddDate(0, 0, 1).Day())
	if err != nil {
		t.Fatalf("seed card: %v", err)
	}

	if err := s.RunPaymentReminders(time.Now()); err != nil {
		t.Errorf("sweep with due payment and no SMTP: %v", err)
	}
}

func TestDueItemsGroupedByUser(t *testing.T) {
	s := newTestScheduler(t)
	now := time.Now()
	dueDay := now.AddDate(0, 0, 1).Day()

	seeds := []struct{ user, table, name string }{
		{"bob", "credit_cards", "Bob Visa"},
		{"alice", "loans", "Alice Car"},
		{"alice", "credit_cards", "Alice Visa"},
	}
	for _, seed := range seeds {
		var err error
		if seed.table == "credit_cards" {
			_, err = s.db.Exec(`INSERT INTO credit_cards (user_id, name, balance, credit_limit, minimum_payment, due_date)
				VALUES (?, ?, '500', '1000', '25', ?)`, seed.user, seed.name, dueDay)
		} else {
			_, err = s.db.Exec(`INSERT INTO loans (user_id, name, balance, original_amount, interest_rate, monthly_payment, term_months, due_date, loan_type)
				VALUES (?, ?, '9000', '12000', 6, '250', 48, ?, 'auto')`, seed.user, seed.name, dueDay)
		}
		if err != nil {
			t.Fatalf("seed %s: %v", seed.name, err)
		}
	}
	// Due next month, outside the 3-day window.
	farDay := now.AddDate(0, 0, 10).Day()
	if _, err := s.db.Exec(`INSERT INTO credit_cards (user_id, name, balance, credit_limit, minimum_payment, due_date)
		VALUES ('alice', 'Alice Amex', '100', '1000', '25', ?)`, farDay); err != nil {
		t.Fatalf("seed far card: %v", err)
	}

	due, err := s.dueWithin(now)
	if err != nil {
		t.Fatalf("dueWithin: %v", err)
	}
	if len(due) != 3 {
		t.Fatalf("got %d due items, want 3", len(due))
	}
	for i, want := range []string{"alice", "alice", "bob"} {
		if due[i].user != want {
			t.Errorf("item %d owner = %q, want %q", i, due[i].user, want)
		}
	}
}

func TestBudgetAlertSweepWithoutSMTP(t *testing.T) {
	s := newTestScheduler(t)
	now := time.Now()
	month := now.Format("2006-01")

	_, err := s.db.Exec(`INSERT INTO budgets (user_id, category, monthly_allocation, alert_threshold, budget_month)
		VALUES ('local', 'groceries', '100', 80, ?)`, month)
	if err != nil {
		t.Fatalf("seed budget: %v", err)
	}
	_, err = s.db.Exec(`INSERT INTO expenses (user_id, description, amount, category, expense_date)
		VALUES ('local', 'shop', '90', 'groceries', ?)`, now.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("seed expense: %v", err)
	}

	if err := s.RunBudgetAlerts(now); err != nil {
		t.Errorf("sweep with over-threshold budget and no SMTP: %v", err)
	}
}

func TestSchedulerStartStop(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	s.Stop()
}

func TestSchedulerRejectsBadCron(t *testing.T) {
	s := newTestScheduler(t)
	s.cfg = &config.Config{ReminderCron: "not a cron expr"}
	if err := s.Start(); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}
