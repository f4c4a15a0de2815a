// Package client persists billing clients in a single TOML file and
// derives payment state from their next-payment date. Every mutation is a
// full load-modify-rewrite cycle against the backing file; writes go
// through a temp file and rename so a concurrent reader never observes a
// partial file.
package client

import (
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Billing cycle values conventionally used in the store. The field is free
// text; these are the ones the forms offer.
const (
	CycleAnnual  = "annual"
	CycleMonthly = "monthly"
	CycleOneTime = "one-time"
)

// DefaultCurrency is applied when a client is stored without a currency.
const DefaultCurrency = "CAD"

// DateLayout is the calendar date format of NextPayment.
const DateLayout = "2006-01-02"

// DueSoonDays is the window, in days, within which an upcoming payment
// counts as due soon.
const DueSoonDays = 14

// Client is one billing client record.
type Client struct {
	// ID is the user-chosen slug, unique across the store.
	ID   string `toml:"id"`
	Name string `toml:"name"`

	Company string `toml:"company"`
	Email   string `toml:"email"`
	Phone   string `toml:"phone"`
	Address string `toml:"address"`
	Notes   string `toml:"notes"`

	BillingCycle string `toml:"billing_cycle"`
	// Amount is in whole currency units.
	Amount   int    `toml:"amount"`
	Currency string `toml:"currency"`
	// NextPayment is a YYYY-MM-DD date, empty when nothing is scheduled.
	NextPayment string `toml:"next_payment"`

	// Projects lists linked project names. The store keeps each project
	// name in at most one client's list.
	Projects []string `toml:"projects"`
}

// PaymentState classifies how close a client's next payment is.
type PaymentState string

const (
	// StateNone means no next payment is set, or the date is unparsable.
	StateNone PaymentState = "none"

	// StatePaid means the next payment is more than DueSoonDays away. The
	// label is kept from the store format; it does not confirm that any
	// payment was received.
	StatePaid PaymentState = "paid"

	StateDueSoon PaymentState = "due_soon"
	StateOverdue PaymentState = "overdue"
)

// DaysUntilPayment returns the signed whole-day delta from today to the
// next payment date, negative when overdue. ok is false when the date is
// unset or unparsable.
func (c Client) DaysUntilPayment(today time.Time) (days int, ok bool) {
	if c.NextPayment == "" {
		return 0, false
	}
	next, err := time.Parse(DateLayout, c.NextPayment)
	if err != nil {
		return 0, false
	}
	// Compare calendar dates, not instants.
	date := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(next.Sub(date).Hours() / 24), true
}

// PaymentStatus derives the payment state as of the given day.
func (c Client) PaymentStatus(today time.Time) PaymentState {
	days, ok := c.DaysUntilPayment(today)
	switch {
	case !ok:
		return StateNone
	case days < 0:
		return StateOverdue
	case days <= DueSoonDays:
		return StateDueSoon
	default:
		return StatePaid
	}
}

// SortByName orders clients by display name, case-insensitively and
// locale-aware. The store itself keeps file order; this is for views.
func SortByName(clients []Client) {
	coll := collate.New(language.English, collate.IgnoreCase)
	slices.SortStableFunc(clients, func(a, b Client) int {
		return coll.CompareString(a.Name, b.Name)
	})
}
