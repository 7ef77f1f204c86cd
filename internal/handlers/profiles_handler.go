package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/dto"
	"github.com/perfdash/dashboard-backend/internal/supabase"
)

const profilesTable = "profiles"

type ProfilesHandler struct {
	sb *supabase.Client
}

func NewProfilesHandler(sb *supabase.Client) *ProfilesHandler {
	return &ProfilesHandler{sb: sb}
}

// List returns profiles, optionally filtered by role.
func (h *ProfilesHandler) List(c *fiber.Ctx) error {
	filters := supabase.Filters{}
	if v := c.Query("role"); v != "" {
		filters["role"] = "eq." + v
	}

	resp, failure := h.sb.Query(profilesTable, filters, listOptions(c))
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch profiles", failure.JSON()))
	}

	return c.JSON(dto.OK(resp))
}

// Get returns a single profile by id.
func (h *ProfilesHandler) Get(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(profilesTable, idFilter(c.Params("id")), supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Profile not found", failure.JSON()))
	}

	records, err := rows(resp)
	if err != nil || len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Profile not found"))
	}

	return c.JSON(dto.OK(records[0]))
}
