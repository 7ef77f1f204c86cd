// Package handlers contains the HTTP request handlers. Each handler
// validates the inbound request, calls the Supabase gateways in sequence,
// and maps the outcome into the uniform response envelope.
package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/supabase"
)

const documentsBucket = "documents"

// bearerToken extracts the bearer token from the Authorization header, or
// returns "" when none is present.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if strings.HasPrefix(auth, prefix) {
		return strings.TrimSpace(auth[len(prefix):])
	}
	return ""
}

// listOptions reads the shared order/limit/offset list parameters with the
// dashboard defaults.
func listOptions(c *fiber.Ctx) supabase.QueryOptions {
	opts := supabase.QueryOptions{
		Order: c.Query("order", "created_at.desc"),
		Limit: 50,
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil && limit > 0 {
		opts.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		if offset, err := strconv.Atoi(raw); err == nil && offset >= 0 {
			opts.Offset = &offset
		}
	}
	return opts
}

// rows splits a PostgREST response body into individual row payloads.
func rows(raw json.RawMessage) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func idFilter(id string) supabase.Filters {
	return supabase.Filters{"id": "eq." + id}
}
