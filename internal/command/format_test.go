package command

import (
	"testing"
	"time"

	"github.com/vinogum/telegram-bot/internal/core"
)

func TestFormatTotal(t *testing.T) {
	if got := formatTotal(core.Income, 10000); got != "Total income: +100.00" {
		t.Fatalf("got %q", got)
	}
	if got := formatTotal(core.Expense, 3050); got != "Total expense: -30.50" {
		t.Fatalf("got %q", got)
	}
	if got := formatTotal(core.Income, 0); got != "Total income: +0.00" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatBalance(t *testing.T) {
	if got := formatBalance(7000); got != "Total balance: 70.00" {
		t.Fatalf("got %q", got)
	}
	if got := formatBalance(-2500); got != "Total balance: -25.00" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatAdded(t *testing.T) {
	if got := formatAdded(core.Income, core.Money{Cents: 10000}); got != "Income added: +100.00" {
		t.Fatalf("got %q", got)
	}
	if got := formatAdded(core.Expense, core.Money{Cents: 999}); got != "Expense added: -9.99" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatReport(t *testing.T) {
	created := time.Date(2024, 3, 15, 9, 5, 0, 0, time.Local)
	got := formatReport([]core.Transaction{
		{ID: 3, Amount: core.Money{Cents: 1250}, Kind: core.Expense, Note: "taxi", CreatedAt: created},
		{ID: 4, Amount: core.Money{Cents: 50000}, Kind: core.Income, CreatedAt: created.Add(time.Hour)},
	})
	want := "ID: 3\nAmount: -12.50\nNote: taxi\nDate: 15.03.2024 09:05\n" +
		"\n" +
		"ID: 4\nAmount: +500.00\nNote: -\nDate: 15.03.2024 10:05\n"
	if got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}
