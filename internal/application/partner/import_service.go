package partner

import (
	"context"
	"encoding/csv"
	"errors"
	"io"

	"github.com/shopdesk/backend/internal/domain/partner"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	csvimport "github.com/shopdesk/backend/internal/infrastructure/import"
)

// ImportResult summarizes a bulk customer import. Rows that fail keep their
// line number so the caller can fix the file and retry; rows that succeed are
// committed regardless of failures elsewhere in the file.
type ImportResult struct {
	Imported    int                  `json:"imported"`
	Skipped     int                  `json:"skipped"`
	Failed      int                  `json:"failed"`
	TotalErrors int                  `json:"total_errors"`
	Errors      []csvimport.RowError `json:"errors,omitempty"`
}

var importRequiredColumns = []string{"name"}

// ImportCSV reads a customer CSV and creates one customer per valid row.
// Expected headers: name, phone, email, address, gstin, credit_limit, notes.
func (s *CustomerService) ImportCSV(ctx context.Context, file io.Reader) (*ImportResult, error) {
	reader, err := csvimport.NewReader(file)
	if err != nil {
		switch {
		case errors.Is(err, csvimport.ErrEmptyFile),
			errors.Is(err, csvimport.ErrMissingHeader):
			return nil, shared.NewDomainError("INVALID_INPUT", "Import file is empty")
		case errors.Is(err, csvimport.ErrInvalidEncoding):
			return nil, shared.NewDomainError("INVALID_INPUT", "Import file must be UTF-8 encoded")
		default:
			return nil, err
		}
	}

	if missing := reader.RequireHeaders(importRequiredColumns...); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Import file is missing required column: "+missing[0])
	}

	result := &ImportResult{}
	collected := csvimport.NewErrorCollection(100)
	seenPhones := make(map[string]int)

	for {
		row, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if errors.Is(err, csvimport.ErrTooManyRows) {
			return nil, shared.NewDomainError("INVALID_INPUT", "Import file has too many rows")
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			collected.Add(csvimport.RowError{
				Line:    parseErr.Line,
				Code:    csvimport.ErrCodeMalformedRow,
				Message: "malformed row",
			})
			result.Failed++
			continue
		}
		if err != nil {
			return nil, err
		}

		if row.IsEmpty() {
			result.Skipped++
			continue
		}

		if s.importRow(ctx, row, seenPhones, collected) {
			result.Imported++
		} else {
			result.Failed++
		}
	}

	result.Errors = collected.Errors()
	result.TotalErrors = collected.Total()
	return result, nil
}

// importRow validates and persists one row, recording any problem against the
// row's line number. Returns true when the customer was created.
func (s *CustomerService) importRow(ctx context.Context, row *csvimport.Row, seenPhones map[string]int, collected *csvimport.ErrorCollection) bool {
	name := row.Get("name")
	if name == "" {
		collected.AddRequired(row.Line, "name")
		return false
	}

	phone := row.Get("phone")
	if phone != "" {
		if _, dup := seenPhones[phone]; dup {
			collected.AddDuplicate(row.Line, "phone", csvimport.ErrCodeDuplicateInFile, phone)
			return false
		}
		exists, err := s.customerRepo.ExistsByPhone(ctx, phone)
		if err != nil {
			collected.AddInvalid(row.Line, "phone", "could not check for existing customer", phone)
			return false
		}
		if exists {
			collected.AddDuplicate(row.Line, "phone", csvimport.ErrCodeDuplicateInDB, phone)
			return false
		}
	}

	customer, err := partner.NewCustomer(name, phone)
	if err != nil {
		collected.AddInvalid(row.Line, "name", domainMessage(err), name)
		return false
	}

	if email, address := row.Get("email"), row.Get("address"); email != "" || address != "" {
		if err := customer.Update(name, phone, email, address); err != nil {
			collected.AddInvalid(row.Line, "email", domainMessage(err), email)
			return false
		}
	}
	if gstin := row.Get("gstin"); gstin != "" {
		if err := customer.SetGSTIN(gstin); err != nil {
			collected.AddInvalid(row.Line, "gstin", domainMessage(err), gstin)
			return false
		}
	}
	if limit := row.Get("credit_limit"); limit != "" {
		money, err := valueobject.NewMoneyFromString(limit)
		if err != nil {
			collected.AddInvalid(row.Line, "credit_limit", domainMessage(err), limit)
			return false
		}
		if err := customer.SetCreditLimit(money); err != nil {
			collected.AddInvalid(row.Line, "credit_limit", domainMessage(err), limit)
			return false
		}
	}
	if notes := row.Get("notes"); notes != "" {
		customer.SetNotes(notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		collected.AddInvalid(row.Line, "", "could not save customer", name)
		return false
	}

	if phone != "" {
		seenPhones[phone] = row.Line
	}
	return true
}

// domainMessage extracts the human-readable message from a domain error,
// falling back to the raw error text.
func domainMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}
