package grammar

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/catatuang/catatuang/internal/model"
)

// User-facing hints. Every rejection path carries one of these; they are
// shown verbatim in chat.
const (
	HintInvalidAmount        = "Format angka tidak valid"
	HintIncomePrefixFormat   = "Format: + [jumlah] [keterangan]"
	HintIncomeKeywordFormat  = "Format: masuk [jumlah] [keterangan]"
	HintExpensePrefixFormat  = "Format: - [jumlah] [keterangan]"
	HintExpenseKeywordFormat = "Format: keluar [jumlah] [keterangan]"
	HintUnknown              = "Format tidak dikenali. Ketik 'bantuan' untuk panduan."
)

// Rule is one matcher in the grammar. Match receives the trimmed line and
// reports whether it consumed it.
type Rule struct {
	Match func(line string) (model.ParsedCommand, bool)
	Name  string
}

// Rules is the grammar in evaluation order. Matching is first-match-wins,
// so earlier rules shadow later, more general ones; the final rule always
// matches. The order is load-bearing: "bare-expense" makes an unsigned
// "50rb makan" an expense, which is the dominant intent for users who skip
// the sign. Do not reorder without product sign-off.
var Rules = []Rule{
	{Name: "help", Match: matchHelp},
	{Name: "reset", Match: matchReset},
	{Name: "get-balance", Match: matchGetBalance},
	{Name: "set-balance", Match: matchSetBalance},
	{Name: "income-prefix", Match: matchIncomePrefix},
	{Name: "income-keyword", Match: matchIncomeKeyword},
	{Name: "expense-prefix", Match: matchExpensePrefix},
	{Name: "expense-keyword", Match: matchExpenseKeyword},
	{Name: "bare-expense", Match: matchBareExpense},
	{Name: "unknown", Match: matchUnknown},
}

// Parse classifies one message line into exactly one command. It is pure
// and stateless: reprocessing the same line always yields the same result.
func Parse(line string) model.ParsedCommand {
	trimmed := strings.TrimSpace(line)
	for _, rule := range Rules {
		if cmd, ok := rule.Match(trimmed); ok {
			return cmd
		}
	}
	// Rules ends with a catch-all, so this is unreachable.
	return model.ParsedCommand{Kind: model.CommandUnrecognized, Hint: HintUnknown}
}

var (
	setBalancePattern     = regexp.MustCompile(`(?i)^saldo\s+awal\s+(.+)$`)
	incomeKeywordPattern  = regexp.MustCompile(`(?i)^(?:masuk|terima|dapat|income|pemasukan)\s+(.+)$`)
	expenseKeywordPattern = regexp.MustCompile(`(?i)^(?:keluar|bayar|beli|expense|pengeluaran)\s+(.+)$`)

	// transactionPattern splits "<amount> <description>". The amount token
	// is the longest prefix that looks numeric plus an optional shorthand
	// suffix; the whitespace before the description is mandatory.
	transactionPattern = regexp.MustCompile(`(?i)^([\d.,]+\s*(?:rb|ribu|jt|juta|k|m)?)\s+(.+)$`)
)

func matchHelp(line string) (model.ParsedCommand, bool) {
	switch strings.ToLower(line) {
	case "bantuan", "help", "?":
		return model.ParsedCommand{Kind: model.CommandHelp}, true
	}
	return model.ParsedCommand{}, false
}

func matchReset(line string) (model.ParsedCommand, bool) {
	switch strings.ToLower(line) {
	case "reset", "reset akun":
		return model.ParsedCommand{Kind: model.CommandReset}, true
	}
	return model.ParsedCommand{}, false
}

func matchGetBalance(line string) (model.ParsedCommand, bool) {
	switch strings.ToLower(line) {
	case "saldo", "balance":
		return model.ParsedCommand{Kind: model.CommandGetBalance}, true
	}
	return model.ParsedCommand{}, false
}

func matchSetBalance(line string) (model.ParsedCommand, bool) {
	match := setBalancePattern.FindStringSubmatch(line)
	if match == nil {
		return model.ParsedCommand{}, false
	}
	amount, ok := ParseAmount(match[1])
	if !ok {
		return model.ParsedCommand{Kind: model.CommandUnrecognized, Hint: HintInvalidAmount}, true
	}
	return model.ParsedCommand{Kind: model.CommandSetBalance, Amount: amount}, true
}

func matchIncomePrefix(line string) (model.ParsedCommand, bool) {
	rest, ok := strings.CutPrefix(line, "+")
	if !ok {
		return model.ParsedCommand{}, false
	}
	return transaction(model.DirectionIncome, strings.TrimSpace(rest), HintIncomePrefixFormat), true
}

func matchIncomeKeyword(line string) (model.ParsedCommand, bool) {
	match := incomeKeywordPattern.FindStringSubmatch(line)
	if match == nil {
		return model.ParsedCommand{}, false
	}
	return transaction(model.DirectionIncome, match[1], HintIncomeKeywordFormat), true
}

func matchExpensePrefix(line string) (model.ParsedCommand, bool) {
	rest, ok := strings.CutPrefix(line, "-")
	if !ok {
		return model.ParsedCommand{}, false
	}
	return transaction(model.DirectionExpense, strings.TrimSpace(rest), HintExpensePrefixFormat), true
}

func matchExpenseKeyword(line string) (model.ParsedCommand, bool) {
	match := expenseKeywordPattern.FindStringSubmatch(line)
	if match == nil {
		return model.ParsedCommand{}, false
	}
	return transaction(model.DirectionExpense, match[1], HintExpenseKeywordFormat), true
}

// matchBareExpense treats a bare "<amount> <description>" line as an
// expense. Defaulting to expense rather than income is a deliberate UX
// choice: "50rb makan" with no sign is almost always spending.
func matchBareExpense(line string) (model.ParsedCommand, bool) {
	amount, description, ok := splitTransaction(line)
	if !ok {
		return model.ParsedCommand{}, false
	}
	return model.ParsedCommand{
		Kind:        model.CommandTransaction,
		Direction:   model.DirectionExpense,
		Amount:      amount,
		Description: description,
	}, true
}

func matchUnknown(line string) (model.ParsedCommand, bool) {
	hint := HintUnknown
	if suggestion := suggestKeyword(line); suggestion != "" {
		hint = fmt.Sprintf("%s\n\nMungkin maksud kamu '%s'?", hint, suggestion)
	}
	return model.ParsedCommand{Kind: model.CommandUnrecognized, Hint: hint}, true
}

// transaction builds a transaction command, or an unrecognized command
// carrying hint when the "<amount> <description>" sub-grammar rejects rest.
// A missing description is a parse failure, never a silent drop.
func transaction(direction model.Direction, rest, hint string) model.ParsedCommand {
	amount, description, ok := splitTransaction(rest)
	if !ok {
		return model.ParsedCommand{Kind: model.CommandUnrecognized, Hint: hint}
	}
	return model.ParsedCommand{
		Kind:        model.CommandTransaction,
		Direction:   direction,
		Amount:      amount,
		Description: description,
	}
}

func splitTransaction(s string) (int64, string, bool) {
	match := transactionPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, "", false
	}
	amount, ok := ParseAmount(match[1])
	if !ok {
		return 0, "", false
	}
	description := strings.TrimSpace(match[2])
	if description == "" {
		return 0, "", false
	}
	return amount, description, true
}

// commandKeywords feeds the near-miss suggestion on unrecognized input.
var commandKeywords = []string{
	"bantuan", "help", "saldo", "balance", "reset",
	"masuk", "terima", "dapat", "income", "pemasukan",
	"keluar", "bayar", "beli", "expense", "pengeluaran",
}

// suggestKeyword returns the closest known keyword when the first token is
// a near miss (edit distance 1-2), or "" when nothing is close enough.
func suggestKeyword(line string) string {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return ""
	}
	token := fields[0]
	if len(token) < 3 {
		return ""
	}

	best := ""
	bestDistance := 3
	for _, keyword := range commandKeywords {
		distance := levenshtein.ComputeDistance(token, keyword)
		if distance > 0 && distance < bestDistance {
			best = keyword
			bestDistance = distance
		}
	}
	return best
}
