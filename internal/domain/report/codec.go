package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Modal field identifiers, shared with the presentation layer
const (
	FieldDate     = "sales_date"
	FieldTotal    = "total_sales"
	FieldCash     = "cash_sales"
	FieldCard     = "card_sales"
	FieldExpenses = "expenses"
)

// Submitter identifies the member filling in the report form
type Submitter struct {
	ID          string
	DisplayName string
}

// ParseSubmission validates raw modal fields and builds a Report.
//
// The date field accepts M/D; the year defaults to the current year in the
// tenant's timezone. Amount fields may carry thousands separators (",") and
// must parse to non-negative integers. The remainder is total - cash -
// expenses; the card amount is not reconciled against the total.
func ParseSubmission(fields map[string]string, tenantID string, submitter Submitter, now time.Time, loc *time.Location) (*Report, error) {
	date, err := ParseReportDate(fields[FieldDate], now, loc)
	if err != nil {
		return nil, err
	}

	total, err := parseAmount(fields[FieldTotal])
	if err != nil {
		return nil, err
	}
	cash, err := parseAmount(fields[FieldCash])
	if err != nil {
		return nil, err
	}
	card, err := parseAmount(fields[FieldCard])
	if err != nil {
		return nil, err
	}
	expenses, err := parseAmount(fields[FieldExpenses])
	if err != nil {
		return nil, err
	}

	return &Report{
		TenantID:             tenantID,
		Date:                 date,
		SubmitterID:          submitter.ID,
		SubmitterDisplayName: submitter.DisplayName,
		TotalAmount:          total,
		CashAmount:           cash,
		CardAmount:           card,
		ExpenseAmount:        expenses,
		Remainder:            total - cash - expenses,
		SubmittedAt:          now,
	}, nil
}

// ParseReportDate normalizes an M/D input like "7/7" to YYYY-MM-DD using the
// current year in the given timezone.
func ParseReportDate(raw string, now time.Time, loc *time.Location) (string, error) {
	t, err := time.ParseInLocation("1/2", strings.TrimSpace(raw), loc)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	date := time.Date(now.In(loc).Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	if date.Month() != t.Month() {
		// Feb 29 in a non-leap year normalizes to Mar 1; reject instead
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return date.Format("2006-01-02"), nil
}

// parseAmount strips thousands separators then parses a non-negative integer
func parseAmount(raw string) (int64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	n, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, raw)
	}
	return n, nil
}
