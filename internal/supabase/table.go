package supabase

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// Filters maps a column name to a PostgREST comparator expression such as
// "eq.<value>" or "gte.<value>". Expressions are forwarded verbatim; the
// gateway does not interpret operators.
type Filters map[string]string

// QueryOptions carries the non-filter query parameters. Zero values are
// omitted from the request; callers apply their own defaults.
type QueryOptions struct {
	Select string
	Order  string
	Limit  int
	Offset *int
}

func (c *Client) tableURL(table string, filters Filters, opts QueryOptions) string {
	q := url.Values{}
	for col, expr := range filters {
		q.Set(col, expr)
	}
	if opts.Select != "" {
		q.Set("select", opts.Select)
	}
	if opts.Order != "" {
		q.Set("order", opts.Order)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset != nil {
		q.Set("offset", strconv.Itoa(*opts.Offset))
	}

	u := c.restURL + "/" + table
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

// Query fetches rows from a table. The response is the raw PostgREST JSON
// array, passed through without further parsing.
func (c *Client) Query(table string, filters Filters, opts QueryOptions) (json.RawMessage, *Failure) {
	req, err := http.NewRequest(http.MethodGet, c.tableURL(table, filters, opts), nil)
	if err != nil {
		return nil, transportFailure(err)
	}
	c.anonHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return c.do(req)
}

// Insert creates a row. PostgREST returns the inserted representation as a
// one-element array.
func (c *Client) Insert(table string, record any) (json.RawMessage, *Failure) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, transportFailure(err)
	}

	req, err := http.NewRequest(http.MethodPost, c.restURL+"/"+table, bytes.NewReader(payload))
	if err != nil {
		return nil, transportFailure(err)
	}
	c.anonHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return c.do(req)
}

// Update patches every row matching the filters and returns the updated
// representations.
func (c *Client) Update(table string, filters Filters, record any) (json.RawMessage, *Failure) {
	payload, err := json.Marshal(record)
	if err != nil {
		return nil, transportFailure(err)
	}

	req, err := http.NewRequest(http.MethodPatch, c.tableURL(table, filters, QueryOptions{}), bytes.NewReader(payload))
	if err != nil {
		return nil, transportFailure(err)
	}
	c.anonHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")
	return c.do(req)
}

// Remove deletes every row matching the filters.
func (c *Client) Remove(table string, filters Filters) (json.RawMessage, *Failure) {
	req, err := http.NewRequest(http.MethodDelete, c.tableURL(table, filters, QueryOptions{}), nil)
	if err != nil {
		return nil, transportFailure(err)
	}
	c.anonHeaders(req)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}
