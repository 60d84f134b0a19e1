// Package models defines the domain entities for the agency dashboard.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored payloads and backups carry amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// TransactionDateLayout is the fixed-width date format used for finance entries.
// Lexicographic comparison of these strings matches chronological order.
const TransactionDateLayout = "2006-01-02"

// MedicalFitnessStatus is the medical check result of a customer.
type MedicalFitnessStatus string

const (
	MedicalPending MedicalFitnessStatus = "Pending"
	MedicalFit     MedicalFitnessStatus = "Fit"
	MedicalUnfit   MedicalFitnessStatus = "Unfit"
)

// Valid reports whether the status is one of the known values.
func (s MedicalFitnessStatus) Valid() bool {
	switch s {
	case MedicalPending, MedicalFit, MedicalUnfit:
		return true
	}
	return false
}

// VisaStatus is the progress of a customer's visa application.
type VisaStatus string

const (
	VisaPending    VisaStatus = "Pending"
	VisaProcessing VisaStatus = "Processing"
	VisaApproved   VisaStatus = "Approved"
	VisaRejected   VisaStatus = "Rejected"
)

// Valid reports whether the status is one of the known values.
func (s VisaStatus) Valid() bool {
	switch s {
	case VisaPending, VisaProcessing, VisaApproved, VisaRejected:
		return true
	}
	return false
}

// EntryType classifies a finance entry as money in or money out.
type EntryType string

const (
	EntryIncome  EntryType = "Income"
	EntryExpense EntryType = "Expense"
)

// Valid reports whether the entry type is one of the known values.
func (t EntryType) Valid() bool {
	return t == EntryIncome || t == EntryExpense
}

// Category is the business category of a finance entry.
type Category string

const (
	CategoryVisa          Category = "Visa"
	CategoryMedical       Category = "Medical"
	CategoryTicket        Category = "Ticket"
	CategoryServiceCharge Category = "Service Charge"
	CategoryOthers        Category = "Others"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryVisa, CategoryMedical, CategoryTicket, CategoryServiceCharge, CategoryOthers:
		return true
	}
	return false
}

// Theme is the UI theme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Valid reports whether the theme is one of the known values.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Customer is a single customer record.
type Customer struct {
	ID                   string               `json:"id"`
	FullName             string               `json:"fullName"`
	PassportNumber       string               `json:"passportNumber"`
	MedicalFitnessStatus MedicalFitnessStatus `json:"medicalFitnessStatus"`
	AgentName            string               `json:"agentName"`
	VisaStatus           VisaStatus           `json:"visaStatus"`
	DocumentURL          string               `json:"documentUrl,omitempty"`
	DocumentName         string               `json:"documentName,omitempty"`
	CreatedAt            time.Time            `json:"createdAt"`
}

// FinanceEntry is a single income or expense transaction.
// TransactionDate stays a date-only string so stored payloads and backups
// round-trip byte for byte.
type FinanceEntry struct {
	ID              string          `json:"id"`
	EntryType       EntryType       `json:"entryType"`
	Category        Category        `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description"`
	TransactionDate string          `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ValidationError reports a rejected field before any store operation runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the customer's required fields and enum values.
func (c *Customer) Validate() error {
	if strings.TrimSpace(c.FullName) == "" {
		return &ValidationError{Field: "fullName", Reason: "required"}
	}
	if strings.TrimSpace(c.PassportNumber) == "" {
		return &ValidationError{Field: "passportNumber", Reason: "required"}
	}
	if strings.TrimSpace(c.AgentName) == "" {
		return &ValidationError{Field: "agentName", Reason: "required"}
	}
	if !c.MedicalFitnessStatus.Valid() {
		return &ValidationError{Field: "medicalFitnessStatus", Reason: "unknown value " + string(c.MedicalFitnessStatus)}
	}
	if !c.VisaStatus.Valid() {
		return &ValidationError{Field: "visaStatus", Reason: "unknown value " + string(c.VisaStatus)}
	}
	return nil
}

// Validate checks the entry's required fields, enum values and amount.
func (e *FinanceEntry) Validate() error {
	if !e.EntryType.Valid() {
		return &ValidationError{Field: "entryType", Reason: "unknown value " + string(e.EntryType)}
	}
	if !e.Category.Valid() {
		return &ValidationError{Field: "category", Reason: "unknown value " + string(e.Category)}
	}
	if !e.Amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: "must be greater than zero"}
	}
	if strings.TrimSpace(e.Description) == "" {
		return &ValidationError{Field: "description", Reason: "required"}
	}
	if _, err := time.Parse(TransactionDateLayout, e.TransactionDate); err != nil {
		return &ValidationError{Field: "transactionDate", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}

// CustomerUpdate is a partial customer change. Nil fields are left untouched;
// id and createdAt are not part of the mergeable set.
type CustomerUpdate struct {
	FullName             *string               `json:"fullName"`
	PassportNumber       *string               `json:"passportNumber"`
	MedicalFitnessStatus *MedicalFitnessStatus `json:"medicalFitnessStatus"`
	AgentName            *string               `json:"agentName"`
	VisaStatus           *VisaStatus           `json:"visaStatus"`
	DocumentURL          *string               `json:"documentUrl"`
	DocumentName         *string               `json:"documentName"`
}

// Apply merges the update over the customer, shallow field by field.
func (u CustomerUpdate) Apply(c *Customer) {
	if u.FullName != nil {
		c.FullName = *u.FullName
	}
	if u.PassportNumber != nil {
		c.PassportNumber = *u.PassportNumber
	}
	if u.MedicalFitnessStatus != nil {
		c.MedicalFitnessStatus = *u.MedicalFitnessStatus
	}
	if u.AgentName != nil {
		c.AgentName = *u.AgentName
	}
	if u.VisaStatus != nil {
		c.VisaStatus = *u.VisaStatus
	}
	if u.DocumentURL != nil {
		c.DocumentURL = *u.DocumentURL
	}
	if u.DocumentName != nil {
		c.DocumentName = *u.DocumentName
	}
}

// FinanceEntryUpdate is a partial finance entry change. Nil fields are left
// untouched; id and createdAt are not part of the mergeable set.
type FinanceEntryUpdate struct {
	EntryType       *EntryType       `json:"entryType"`
	Category        *Category        `json:"category"`
	Amount          *decimal.Decimal `json:"amount"`
	Description     *string          `json:"description"`
	TransactionDate *string          `json:"transactionDate"`
}

// Apply merges the update over the entry, shallow field by field.
func (u FinanceEntryUpdate) Apply(e *FinanceEntry) {
	if u.EntryType != nil {
		e.EntryType = *u.EntryType
	}
	if u.Category != nil {
		e.Category = *u.Category
	}
	if u.Amount != nil {
		e.Amount = *u.Amount
	}
	if u.Description != nil {
		e.Description = *u.Description
	}
	if u.TransactionDate != nil {
		e.TransactionDate = *u.TransactionDate
	}
}
