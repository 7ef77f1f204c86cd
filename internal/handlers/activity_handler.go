package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/dto"
	"github.com/perfdash/dashboard-backend/internal/supabase"
)

type ActivityHandler struct {
	sb *supabase.Client
}

func NewActivityHandler(sb *supabase.Client) *ActivityHandler {
	return &ActivityHandler{sb: sb}
}

// List returns activity log entries, newest first by default.
func (h *ActivityHandler) List(c *fiber.Ctx) error {
	filters := supabase.Filters{}
	if v := c.Query("team_id"); v != "" {
		filters["team_id"] = "eq." + v
	}
	if v := c.Query("user_id"); v != "" {
		filters["user_id"] = "eq." + v
	}
	if v := c.Query("action_type"); v != "" {
		filters["action_type"] = "eq." + v
	}

	resp, failure := h.sb.Query(activityLogsTable, filters, listOptions(c))
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch activity logs", failure.JSON()))
	}

	return c.JSON(dto.OK(resp))
}
