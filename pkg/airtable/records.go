package airtable

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxPageSize = 100

// Fields is the field map of a record.
type Fields map[string]any

// Record is one Airtable row.
type Record struct {
	ID          string `json:"id"`
	CreatedTime string `json:"createdTime,omitempty"`
	Fields      Fields `json:"fields"`
}

// Text returns a text field, or "". Lookup and attachment arrays yield their first value.
func (r Record) Text(field string) string {
	switch v := r.Fields[field].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
			if m, ok := v[0].(map[string]any); ok {
				if s, ok := m["url"].(string); ok {
					return s
				}
			}
		}
	}
	return ""
}

// Int returns a numeric field, or 0. Numbers stored as text are parsed.
func (r Record) Int(field string) int {
	switch v := r.Fields[field].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil {
			return n
		}
	}
	return 0
}

// Has reports whether the field is present.
func (r Record) Has(field string) bool {
	_, ok := r.Fields[field]
	return ok
}

// Links returns the record ids of a linked-record field.
func (r Record) Links(field string) []string {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && s != "" {
			ids = append(ids, s)
		}
	}
	return ids
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Sort orders a listing by one field.
type Sort struct {
	Field     string
	Direction Direction
}

// ListParams narrows a listing. Zero values are omitted.
type ListParams struct {
	PageSize        int
	Offset          string
	Sort            []Sort
	FilterByFormula string
	MaxRecords      int
	Fields          []string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(min(p.PageSize, maxPageSize)))
	}
	if p.Offset != "" {
		q.Set("offset", p.Offset)
	}
	for i, s := range p.Sort {
		prefix := "sort[" + strconv.Itoa(i) + "]"
		q.Set(prefix+"[field]", s.Field)
		dir := s.Direction
		if dir == "" {
			dir = Asc
		}
		q.Set(prefix+"[direction]", string(dir))
	}
	if p.FilterByFormula != "" {
		q.Set("filterByFormula", p.FilterByFormula)
	}
	if p.MaxRecords > 0 {
		q.Set("maxRecords", strconv.Itoa(p.MaxRecords))
	}
	for _, f := range p.Fields {
		q.Add("fields[]", f)
	}
	return q
}

// ListResponse is one page of records. Offset is empty on the last page.
type ListResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// ListRecords fetches a single page.
func (c *Client) ListRecords(ctx context.Context, table string, params ListParams) (*ListResponse, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	var out ListResponse
	if err := c.do(ctx, http.MethodGet, c.tableURL(table, ""), params.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAll follows offsets until the table is exhausted.
func (c *Client) ListAll(ctx context.Context, table string, params ListParams) ([]Record, error) {
	if params.PageSize <= 0 {
		params.PageSize = maxPageSize
	}

	var all []Record
	for {
		page, err := c.ListRecords(ctx, table, params)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Records...)
		if page.Offset == "" || page.Offset == params.Offset {
			return all, nil
		}
		params.Offset = page.Offset
	}
}

// FindFirst returns the first record matching formula, or ErrNotFound.
func (c *Client) FindFirst(ctx context.Context, table, formula string) (*Record, error) {
	page, err := c.ListRecords(ctx, table, ListParams{FilterByFormula: formula, MaxRecords: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Records) == 0 {
		return nil, ErrNotFound
	}
	return &page.Records[0], nil
}

// GetRecord fetches a record by id.
func (c *Client) GetRecord(ctx context.Context, table, id string) (*Record, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	if id == "" {
		return nil, ErrMissingID
	}
	var out Record
	if err := c.do(ctx, http.MethodGet, c.tableURL(table, id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type writeRequest struct {
	Fields   Fields `json:"fields"`
	Typecast bool   `json:"typecast,omitempty"`
}

// CreateRecord inserts a record and returns it as stored.
func (c *Client) CreateRecord(ctx context.Context, table string, fields Fields) (*Record, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	var out Record
	if err := c.do(ctx, http.MethodPost, c.tableURL(table, ""), nil, writeRequest{Fields: fields}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRecord changes only the given fields (PATCH semantics).
func (c *Client) UpdateRecord(ctx context.Context, table, id string, fields Fields) (*Record, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	if id == "" {
		return nil, ErrMissingID
	}
	var out Record
	if err := c.do(ctx, http.MethodPatch, c.tableURL(table, id), nil, writeRequest{Fields: fields}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
