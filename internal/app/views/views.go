// Package views holds the display shapes of the portal: one ViewRecord per
// entity, a pure total projector from the raw service record, and the
// pipeline descriptor (search fields, categorical filters) each list page
// uses. Projectors never panic on missing optional fields; they substitute
// the documented placeholder instead.
package views

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Placeholders substituted for missing optional fields.
const (
	PlaceholderNA         = "N/A"
	PlaceholderUnassigned = "Unassigned"
	DefaultAvatar         = "/assets/img/avatar-default.svg"
)

// Filter sentinels. Selecting one makes the corresponding filter a no-op.
const (
	AllDepartments = "All Departments"
	AllStatuses    = "All Statuses"
	AllMethods     = "All Methods"
	AllSemesters   = "All Semesters"
	AllAudiences   = "All Audiences"
	AllKinds       = "All Kinds"
)

// StatCard is one dashboard summary card. Cards aggregate over the full
// projected set, never over the currently filtered rows.
type StatCard struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Hint  string `json:"hint,omitempty"`
}

func orPlaceholder(s *string, placeholder string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return placeholder
	}
	return *s
}

// yearsSince renders tenure the way the lecturer pages show it: "3 years",
// "1 year", or "Less than a year".
func yearsSince(t time.Time, now time.Time) string {
	if t.IsZero() || t.After(now) {
		return PlaceholderNA
	}
	years := 0
	for !t.AddDate(years+1, 0, 0).After(now) {
		years++
	}
	switch years {
	case 0:
		return "Less than a year"
	case 1:
		return "1 year"
	default:
		return fmt.Sprintf("%d years", years)
	}
}

// yearLabel renders a study year as "Year 3".
func yearLabel(year int) string {
	if year <= 0 {
		return PlaceholderNA
	}
	return fmt.Sprintf("Year %d", year)
}

// FormatMoney renders an amount carried in cents, e.g. "$1,234.50".
func FormatMoney(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100
	symbol := currencySymbol(currency)
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, groupThousands(whole), frac)
}

func currencySymbol(currency string) string {
	switch strings.ToLower(currency) {
	case "", "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	default:
		return strings.ToUpper(currency) + " "
	}
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return PlaceholderNA
	}
	return t.Format("Jan 2, 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return PlaceholderNA
	}
	return t.Format("Jan 2, 2006 15:04")
}

func titleCase(s string) string {
	if s == "" {
		return PlaceholderNA
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
