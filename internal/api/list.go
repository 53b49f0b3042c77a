package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// List is the standard envelope every list/search endpoint returns.
type List[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

// ListQuery is the offset/limit window sent to list endpoints.
type ListQuery struct {
	Offset int
	Limit  int
	Term   string
	Date   string
}

// Values renders the query string. Term and Date are included only when
// non-empty (list and search endpoints share the envelope, not the
// parameter set).
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("offset", strconv.Itoa(q.Offset))
	v.Set("limit", strconv.Itoa(q.Limit))
	if q.Term != "" {
		v.Set("term", q.Term)
	}
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	return v
}

// GetList fetches a page of records and validates the envelope shape.
// A response whose total is negative or that omits the envelope is a
// decode failure, not a silent empty page.
func GetList[T any](ctx context.Context, c *Client, path string, q ListQuery) (*List[T], error) {
	var out List[T]
	if err := c.Get(ctx, path, q.Values(), &out); err != nil {
		return nil, err
	}
	if out.Total < 0 {
		return nil, fmt.Errorf("api: malformed list envelope: total %d", out.Total)
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return &out, nil
}
