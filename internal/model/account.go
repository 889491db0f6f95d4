package model

import "time"

// Account is a registered sender, keyed by the canonical phone number (or
// the opaque address when the number could not be recovered).
type Account struct {
	CreatedAt      time.Time
	ID             string
	PhoneNumber    string // canonical key
	Username       string
	PasswordHash   string
	InitialBalance int64
}

const (
	// DefaultCategory is assigned to every chat-entered transaction; users
	// recategorize from the dashboard.
	DefaultCategory = "Lainnya"
	// SourceChat marks entries recorded through the chat bot.
	SourceChat = "whatsapp"
	// SourceDashboard marks entries recorded through the web dashboard.
	SourceDashboard = "dashboard"
)

// Transaction is a single ledger entry. Amounts are whole rupiah; the
// currency has no fractional unit in this system.
type Transaction struct {
	CreatedAt   time.Time
	ID          string
	AccountID   string
	Direction   Direction
	Description string
	Category    string
	Source      string
	Amount      int64
}

// BalanceSummary is the derived balance for one account: the collaborator
// store supplies the sums, the core only formats them.
type BalanceSummary struct {
	InitialBalance int64
	TotalIncome    int64
	TotalExpense   int64
}

// Total returns initial balance + income - expense.
func (b BalanceSummary) Total() int64 {
	return b.InitialBalance + b.TotalIncome - b.TotalExpense
}
