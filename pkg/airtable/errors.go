package airtable

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("airtable: api key is required")
	ErrMissingBaseID = errors.New("airtable: base id is required")
	ErrMissingTable  = errors.New("airtable: table name is required")
	ErrMissingID     = errors.New("airtable: record id is required")
	ErrNotFound      = errors.New("airtable: record not found")
	ErrRequestFailed = errors.New("airtable: request failed")
)

// APIError is a non-2xx answer from Airtable.
type APIError struct {
	Status  int
	Type    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("airtable: status %d: %s", e.Status, e.Type)
	}
	return fmt.Sprintf("airtable: status %d: %s: %s", e.Status, e.Type, e.Message)
}
