package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/dto"
	"github.com/perfdash/dashboard-backend/internal/supabase"
	"github.com/perfdash/dashboard-backend/internal/validation"
)

const (
	teamsTable       = "teams"
	teamMembersTable = "team_members"
)

type TeamsHandler struct {
	sb *supabase.Client
}

func NewTeamsHandler(sb *supabase.Client) *TeamsHandler {
	return &TeamsHandler{sb: sb}
}

// List returns teams. manager_id narrows to teams owned by a manager;
// employee_id narrows to teams the employee is a member of, resolved
// through the join table first.
func (h *TeamsHandler) List(c *fiber.Ctx) error {
	filters := supabase.Filters{}
	if v := c.Query("manager_id"); v != "" {
		filters["manager_id"] = "eq." + v
	}

	if employeeID := c.Query("employee_id"); employeeID != "" {
		memberships, failure := h.sb.Query(teamMembersTable,
			supabase.Filters{"employee_id": "eq." + employeeID},
			supabase.QueryOptions{Select: "team_id"})
		if failure != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch teams", failure.JSON()))
		}

		var rows []struct {
			TeamID string `json:"team_id"`
		}
		if err := json.Unmarshal(memberships, &rows); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Failed to fetch teams"))
		}
		if len(rows) == 0 {
			return c.JSON(dto.OK(json.RawMessage("[]")))
		}

		ids := make([]string, len(rows))
		for i, r := range rows {
			ids[i] = r.TeamID
		}
		filters["id"] = "in.(" + strings.Join(ids, ",") + ")"
	}

	resp, failure := h.sb.Query(teamsTable, filters, listOptions(c))
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch teams", failure.JSON()))
	}

	return c.JSON(dto.OK(resp))
}

// Get returns a single team by id.
func (h *TeamsHandler) Get(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(teamsTable, idFilter(c.Params("id")), supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Team not found", failure.JSON()))
	}

	records, err := rows(resp)
	if err != nil || len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Team not found"))
	}

	return c.JSON(dto.OK(records[0]))
}

// Create inserts a team and fires a best-effort activity log.
func (h *TeamsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	errs := validation.Errors{}
	if req.Name == "" {
		errs.Add("name", "name is required")
	} else if len(req.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if req.ManagerID != nil && !validation.IsUUID(*req.ManagerID) {
		errs.Add("manager_id", "manager_id must be a valid UUID")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	record := map[string]any{"name": req.Name}
	if req.Description != nil {
		record["description"] = *req.Description
	}
	if req.ManagerID != nil {
		record["manager_id"] = *req.ManagerID
	}

	resp, failure := h.sb.Insert(teamsTable, record)
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to create team", failure.JSON()))
	}

	var created []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &created); err == nil && len(created) > 0 {
		logActivityWithToken(h.sb, bearerToken(c), created[0].ID, "team_created",
			"Created team: "+req.Name,
			map[string]any{"team_name": req.Name})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Team created successfully", resp))
}

// Members lists the join rows for a team.
func (h *TeamsHandler) Members(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(teamMembersTable,
		supabase.Filters{"team_id": "eq." + c.Params("id")},
		supabase.QueryOptions{Order: "joined_at.desc"})
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch team members", failure.JSON()))
	}

	return c.JSON(dto.OK(resp))
}

// AddMember inserts a join row. Uniqueness of (team_id, employee_id) is
// enforced by the store, not here; a duplicate surfaces as an upstream
// failure.
func (h *TeamsHandler) AddMember(c *fiber.Ctx) error {
	var req dto.AddTeamMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	errs := validation.Errors{}
	if req.EmployeeID == "" {
		errs.Add("employee_id", "employee_id is required")
	} else if !validation.IsUUID(req.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	resp, failure := h.sb.Insert(teamMembersTable, map[string]any{
		"team_id":     c.Params("id"),
		"employee_id": req.EmployeeID,
	})
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to add team member", failure.JSON()))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Team member added successfully", resp))
}
