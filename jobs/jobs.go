// Package jobs runs the scheduled background sweeps: payment due-date
// reminders and budget threshold alerts, delivered by email.
package jobs

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fintrack-app/fintrack/config"
	"github.com/fintrack-app/fintrack/finance"
	"github.com/fintrack-app/fintrack/models"
)

// Scheduler owns the cron instance and the sweeps it triggers.
type Scheduler struct {
	db     *sql.DB
	cfg    *config.Config
	sender *Sender
	cron   *cron.Cron
}

// NewScheduler wires the sweeps against the database. The sender may be
// nil when SMTP is not configured; sweeps then log and skip delivery.
func NewScheduler(db *sql.DB, cfg *config.Config) *Scheduler {
	s := &Scheduler{db: db, cfg: cfg, cron: cron.New()}
	if cfg.SMTPConfigured() {
		s.sender = NewSender(cfg)
	}
	return s
}

// Start registers the daily sweep and begins the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.ReminderCron, func() {
		now := time.Now()
		if err := s.RunPaymentReminders(now); err != nil {
			slog.Error("payment reminder sweep failed", "error", err)
		}
		if err := s.RunBudgetAlerts(now); err != nil {
			slog.Error("budget alert sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("scheduling sweeps: %w", err)
	}
	s.cron.Start()
	slog.Info("job scheduler started", "cron", s.cfg.ReminderCron)
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

type dueItem struct {
	user    string
	name    string
	kind    string
	payment models.Money
	dueDate time.Time
}

// dueWithin finds every card and loan payment due within the reminder
// window, grouped by owner so the digest never mixes users.
func (s *Scheduler) dueWithin(now time.Time) ([]dueItem, error) {
	cutoff := now.AddDate(0, 0, s.cfg.ReminderDays)
	var due []dueItem

	rows, err := s.db.Query(`SELECT user_id, name, minimum_payment, due_date
		FROM credit_cards ORDER BY user_id, name`)
	if err != nil {
		return nil, err
	}
	if err := collectDue(rows, "credit card", now, cutoff, &due); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`SELECT user_id, name, monthly_payment, due_date
		FROM loans ORDER BY user_id, name`)
	if err != nil {
		return nil, err
	}
	if err := collectDue(rows, "loan", now, cutoff, &due); err != nil {
		return nil, err
	}

	sort.SliceStable(due, func(i, j int) bool {
		if due[i].user != due[j].user {
			return due[i].user < due[j].user
		}
		return due[i].dueDate.Before(due[j].dueDate)
	})
	return due, nil
}

// RunPaymentReminders emails a digest of credit card and loan payments
// due within the configured reminder window.
func (s *Scheduler) RunPaymentReminders(now time.Time) error {
	due, err := s.dueWithin(now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		slog.Debug("no payments due within reminder window", "days", s.cfg.ReminderDays)
		return nil
	}
	if s.sender == nil {
		slog.Warn("payments due but SMTP not configured, skipping reminder email", "count", len(due))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The following payments are due within %d days:\n", s.cfg.ReminderDays)
	user := ""
	for _, item := range due {
		if item.user != user {
			user = item.user
			fmt.Fprintf(&b, "\nUser %s:\n", user)
		}
		fmt.Fprintf(&b, "- %s (%s): %s due on %s\n",
			item.name, item.kind, item.payment.String(), item.dueDate.Format("2006-01-02"))
	}
	return s.sender.Send("Upcoming payment reminders", b.String())
}

func collectDue(rows *sql.Rows, kind string, now, cutoff time.Time, due *[]dueItem) error {
	defer rows.Close()
	for rows.Next() {
		var user, name string
		var payment models.Money
		var dueDay int
		if err := rows.Scan(&user, &name, &payment, &dueDay); err != nil {
			return err
		}
		next, err := finance.NextDueDate(dueDay, now)
		if err != nil {
			continue
		}
		if !next.After(cutoff) {
			*due = append(*due, dueItem{user: user, name: name, kind: kind, payment: payment, dueDate: next})
		}
	}
	return rows.Err()
}

// RunBudgetAlerts emails a digest of current-month budgets whose spend
// has crossed their alert threshold.
func (s *Scheduler) RunBudgetAlerts(now time.Time) error {
	month := now.Format("2006-01")
	rows, err := s.db.Query(`SELECT user_id, category, monthly_allocation, alert_threshold
		FROM budgets WHERE budget_month = ? ORDER BY user_id, category`, month)
	if err != nil {
		return err
	}
	defer rows.Close()

	type alert struct {
		user     string
		category string
		status   finance.BudgetStatus
	}
	var alerts []alert
	for rows.Next() {
		var user, category string
		var allocation models.Money
		var threshold float64
		if err := rows.Scan(&user, &category, &allocation, &threshold); err != nil {
			return err
		}
		var spent models.Money
		err := s.db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM expenses
			WHERE user_id = ? AND category = ? AND strftime('%Y-%m', expense_date) = ?`,
			user, category, month).Scan(&spent)
		if err != nil {
			return err
		}
		status := finance.BudgetProgress(allocation.Decimal, threshold, spent.Decimal)
		if status.OverThreshold {
			alerts = append(alerts, alert{user: user, category: category, status: status})
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(alerts) == 0 {
		slog.Debug("no budgets over threshold", "month", month)
		return nil
	}
	if s.sender == nil {
		slog.Warn("budgets over threshold but SMTP not configured, skipping alert email", "count", len(alerts))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The following budgets for %s have crossed their alert threshold:\n", month)
	user := ""
	for _, a := range alerts {
		if a.user != user {
			user = a.user
			fmt.Fprintf(&b, "\nUser %s:\n", user)
		}
		fmt.Fprintf(&b, "- %s: spent %s of %s (%.0f%%)\n",
			a.category, a.status.Spent.StringFixed(2), a.status.Allocation.StringFixed(2), a.status.Percent)
	}
	return s.sender.Send("Budget threshold alerts", b.String())
}
