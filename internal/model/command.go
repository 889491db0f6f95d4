// Package model defines the core domain types shared across the application.
package model

// CommandKind identifies which command a chat message parsed into.
type CommandKind string

const (
	// CommandHelp requests the usage guide.
	CommandHelp CommandKind = "help"
	// CommandReset rotates the account credential. Transaction history is preserved.
	CommandReset CommandKind = "reset"
	// CommandGetBalance requests the balance summary.
	CommandGetBalance CommandKind = "get_balance"
	// CommandSetBalance sets the initial balance.
	CommandSetBalance CommandKind = "set_balance"
	// CommandTransaction records an income or expense.
	CommandTransaction CommandKind = "transaction"
	// CommandUnrecognized is the total fallback; Hint carries the user-facing message.
	CommandUnrecognized CommandKind = "unrecognized"
)

// Direction distinguishes money coming in from money going out.
type Direction string

const (
	// DirectionIncome marks a pemasukan transaction.
	DirectionIncome Direction = "income"
	// DirectionExpense marks a pengeluaran transaction.
	DirectionExpense Direction = "expense"
)

// ParsedCommand is the result of classifying one inbound message line.
// Exactly one command is produced per line; CommandUnrecognized is the fallback.
type ParsedCommand struct {
	Kind        CommandKind
	Direction   Direction // transaction commands only
	Description string    // transaction commands only
	Hint        string    // unrecognized commands only, shown verbatim to the sender
	Amount      int64     // set_balance and transaction commands
}

// IsTransaction reports whether the command records a ledger entry.
func (c ParsedCommand) IsTransaction() bool {
	return c.Kind == CommandTransaction
}
