// Package search filters and sorts collections for table views.
package search

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"gitlab.com/thantzin/agencydesk/internal/models"
)

// Direction orders a sorted view.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// newCollator returns a locale-aware comparer for sorted columns. Collators
// carry internal buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

func matches(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// FilterCustomers keeps customers whose full name, passport number or agent
// name contains the query, case-insensitively. An empty query keeps all.
func FilterCustomers(customers []models.Customer, query string) []models.Customer {
	out := make([]models.Customer, 0, len(customers))
	for _, c := range customers {
		if matches(query, c.FullName, c.PassportNumber, c.AgentName) {
			out = append(out, c)
		}
	}
	return out
}

// FilterEntries keeps entries whose description or category contains the
// query, case-insensitively, optionally restricted to one entry type.
// An empty entryType keeps both types.
func FilterEntries(entries []models.FinanceEntry, query string, entryType models.EntryType) []models.FinanceEntry {
	out := make([]models.FinanceEntry, 0, len(entries))
	for _, e := range entries {
		if entryType != "" && e.EntryType != entryType {
			continue
		}
		if matches(query, e.Description, string(e.Category)) {
			out = append(out, e)
		}
	}
	return out
}

// SortCustomers orders customers by the named field. Text fields compare
// locale-aware, createdAt compares chronologically, and unknown fields leave
// the input order untouched. The sort is stable.
func SortCustomers(customers []models.Customer, field string, dir Direction) []models.Customer {
	out := append([]models.Customer(nil), customers...)
	collator := newCollator()

	var less func(a, b models.Customer) bool
	switch field {
	case "fullName":
		less = func(a, b models.Customer) bool { return collator.CompareString(a.FullName, b.FullName) < 0 }
	case "passportNumber":
		less = func(a, b models.Customer) bool {
			return collator.CompareString(a.PassportNumber, b.PassportNumber) < 0
		}
	case "agentName":
		less = func(a, b models.Customer) bool { return collator.CompareString(a.AgentName, b.AgentName) < 0 }
	case "medicalFitnessStatus":
		less = func(a, b models.Customer) bool {
			return collator.CompareString(string(a.MedicalFitnessStatus), string(b.MedicalFitnessStatus)) < 0
		}
	case "visaStatus":
		less = func(a, b models.Customer) bool {
			return collator.CompareString(string(a.VisaStatus), string(b.VisaStatus)) < 0
		}
	case "createdAt":
		less = func(a, b models.Customer) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// SortEntries orders finance entries by the named field. amount compares
// numerically, text fields locale-aware, createdAt chronologically; unknown
// fields leave the input order untouched. The sort is stable.
func SortEntries(entries []models.FinanceEntry, field string, dir Direction) []models.FinanceEntry {
	out := append([]models.FinanceEntry(nil), entries...)
	collator := newCollator()

	var less func(a, b models.FinanceEntry) bool
	switch field {
	case "transactionDate":
		less = func(a, b models.FinanceEntry) bool { return a.TransactionDate < b.TransactionDate }
	case "entryType":
		less = func(a, b models.FinanceEntry) bool {
			return collator.CompareString(string(a.EntryType), string(b.EntryType)) < 0
		}
	case "category":
		less = func(a, b models.FinanceEntry) bool {
			return collator.CompareString(string(a.Category), string(b.Category)) < 0
		}
	case "description":
		less = func(a, b models.FinanceEntry) bool {
			return collator.CompareString(a.Description, b.Description) < 0
		}
	case "amount":
		less = func(a, b models.FinanceEntry) bool { return a.Amount.LessThan(b.Amount) }
	case "createdAt":
		less = func(a, b models.FinanceEntry) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		if dir == Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
