package command

import (
	"fmt"
	"strings"

	"github.com/vinogum/telegram-bot/internal/core"
)

// StartText is the /start greeting.
const StartText = "Hello! 😀 I am a financial bot.\n" +
	"I can help you:\n" +
	"   - keep track of your income and expenses,\n" +
	"   - view your balance,\n" +
	"   - receive reports for the day, week, month, or year,\n" +
	"   - delete or update entries as needed,\n" +
	"   - view statistics for a selected period.\n\n" +
	"See the commands using /help."

// HelpText lists every command with its argument shapes.
const HelpText = "/help - Show a list of all commands\n" +
	"/income - Show total income or add new income\n" +
	"/income <amount> - Add income of <amount>\n" +
	"/income <amount> [note] - Add income of <amount> with a note\n" +
	"/expense - Show total expenses or add new expense\n" +
	"/expense <amount> - Add expense of <amount>\n" +
	"/expense <amount> [note] - Add an expense of <amount> with a note\n" +
	"/balance - Show the total balance (income – expenses)\n" +
	"/report - Show transactions for a period\n" +
	"/report day - For the day\n" +
	"/report week - For the week\n" +
	"/report month - For the month\n" +
	"/report year - For the year\n" +
	"/delete <id> - Delete transaction by ID\n" +
	"/update <id> <±amount> [note] - Change existing transaction\n"

// User-facing error replies. Parser and repository errors map onto these;
// anything unexpected falls back to replyFailure.
const (
	replyIncorrectAmount   = "Incorrect amount"
	replyInvalidAmount     = "Invalid amount"
	replyInvalidID         = "Invalid ID"
	replyInvalidInterval   = "Invalid interval"
	replyNoSuchTransaction = "You have no such transaction"
	replyNotFound          = "Transaction not found"
	replyNoTransactions    = "No transactions"
	replyNoteTooLong       = "Note is too long (max 255 characters)"
	replyDeleteArgs        = "One argument (ID) is required to delete. Please check /help"
	replyUpdateArgs        = "Two arguments are required. Please check /help"
	replyReportArgs        = "One argument is required. Please check /help"
	replyFailure           = "Something went wrong. Please try again later."
)

const reportDateLayout = "02.01.2006 15:04"

// formatTotal renders a per-kind running total, e.g. "Total income: +70.00".
func formatTotal(kind core.Kind, cents int64) string {
	return fmt.Sprintf("Total %s: %s%s", kind, kind.Sign(), core.FormatCents(cents))
}

// formatBalance renders income minus expense; the value may be negative.
func formatBalance(cents int64) string {
	return fmt.Sprintf("Total balance: %s", core.FormatCents(cents))
}

// formatAdded confirms a new transaction, e.g. "Income added: +100.00".
func formatAdded(kind core.Kind, amount core.Money) string {
	return fmt.Sprintf("%s added: %s%s", kind.Title(), kind.Sign(), amount)
}

func formatDeleted(id int64) string {
	return fmt.Sprintf("Transaction %d successfully deleted", id)
}

func formatUpdated(id int64) string {
	return fmt.Sprintf("Transaction %d updated successfully", id)
}

// formatReport renders one block per transaction, blocks separated by a
// blank line. The sign comes from the kind and is applied only here; the
// date is shown in local time.
func formatReport(transactions []core.Transaction) string {
	blocks := make([]string, 0, len(transactions))
	for _, tx := range transactions {
		note := tx.Note
		if note == "" {
			note = "-"
		}
		blocks = append(blocks, fmt.Sprintf(
			"ID: %d\nAmount: %s%s\nNote: %s\nDate: %s\n",
			tx.ID,
			tx.Kind.Sign(), tx.Amount,
			note,
			tx.CreatedAt.Local().Format(reportDateLayout),
		))
	}
	return strings.Join(blocks, "\n")
}
