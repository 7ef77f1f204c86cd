package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/dto"
	"github.com/perfdash/dashboard-backend/internal/stats"
	"github.com/perfdash/dashboard-backend/internal/supabase"
	"github.com/perfdash/dashboard-backend/internal/validation"
)

const metricsTable = "performance_metrics"

type MetricsHandler struct {
	sb *supabase.Client
}

func NewMetricsHandler(sb *supabase.Client) *MetricsHandler {
	return &MetricsHandler{sb: sb}
}

// List returns performance metrics, optionally filtered by team, employee,
// type, and period date range.
func (h *MetricsHandler) List(c *fiber.Ctx) error {
	filters := supabase.Filters{}
	if v := c.Query("team_id"); v != "" {
		filters["team_id"] = "eq." + v
	}
	if v := c.Query("employee_id"); v != "" {
		filters["employee_id"] = "eq." + v
	}
	if v := c.Query("metric_type"); v != "" {
		filters["metric_type"] = "eq." + v
	}
	if v := c.Query("start_date"); v != "" {
		filters["period_start"] = "gte." + v
	}
	if v := c.Query("end_date"); v != "" {
		filters["period_end"] = "lte." + v
	}

	resp, failure := h.sb.Query(metricsTable, filters, listOptions(c))
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch metrics", failure.JSON()))
	}

	return c.JSON(dto.OK(resp))
}

// Statistics fetches the matching metrics and reduces them in process.
func (h *MetricsHandler) Statistics(c *fiber.Ctx) error {
	filters := supabase.Filters{}
	if v := c.Query("team_id"); v != "" {
		filters["team_id"] = "eq." + v
	}
	if v := c.Query("employee_id"); v != "" {
		filters["employee_id"] = "eq." + v
	}

	resp, failure := h.sb.Query(metricsTable, filters, supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to fetch statistics", failure.JSON()))
	}

	var metrics []stats.Metric
	if err := json.Unmarshal(resp, &metrics); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Failed to fetch statistics"))
	}

	return c.JSON(dto.OK(stats.Calculate(metrics)))
}

// Get returns a single metric by id, 404 when the lookup comes back empty.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	resp, failure := h.sb.Query(metricsTable, idFilter(c.Params("id")), supabase.QueryOptions{})
	if failure != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("Metric not found", failure.JSON()))
	}

	records, err := rows(resp)
	if err != nil || len(records) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.FailMessage("Metric not found"))
	}

	return c.JSON(dto.OK(records[0]))
}

// Create validates the payload, inserts the metric, and fires a
// best-effort activity log keyed off the caller's bearer token.
func (h *MetricsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	if errs := validateCreateMetric(req); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	record := map[string]any{
		"employee_id":  req.EmployeeID,
		"team_id":      req.TeamID,
		"metric_type":  req.MetricType,
		"metric_value": *req.MetricValue,
		"period_start": req.PeriodStart,
		"period_end":   req.PeriodEnd,
	}
	if req.MetricTarget != nil {
		record["metric_target"] = *req.MetricTarget
	}
	if req.Notes != nil {
		record["notes"] = *req.Notes
	}

	resp, failure := h.sb.Insert(metricsTable, record)
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to create metric", failure.JSON()))
	}

	logActivityWithToken(h.sb, bearerToken(c), req.TeamID, "metric_added",
		"Added new "+req.MetricType+" metric",
		map[string]any{"metric_type": req.MetricType})

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("Metric created successfully", resp))
}

// Update patches the submitted fields of a metric.
func (h *MetricsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateMetricRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	if errs := validateUpdateMetric(req); errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	resp, failure := h.sb.Update(metricsTable, idFilter(c.Params("id")), req.Record())
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to update metric", failure.JSON()))
	}

	return c.JSON(dto.OKMessage("Metric updated successfully", resp))
}

// Delete removes a metric by id.
func (h *MetricsHandler) Delete(c *fiber.Ctx) error {
	if _, failure := h.sb.Remove(metricsTable, idFilter(c.Params("id"))); failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Failed to delete metric", failure.JSON()))
	}

	return c.JSON(dto.OKMessage("Metric deleted successfully", nil))
}

func validateCreateMetric(req dto.CreateMetricRequest) validation.Errors {
	errs := validation.Errors{}

	if req.EmployeeID == "" {
		errs.Add("employee_id", "employee_id is required")
	} else if !validation.IsUUID(req.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if req.TeamID == "" {
		errs.Add("team_id", "team_id is required")
	} else if !validation.IsUUID(req.TeamID) {
		errs.Add("team_id", "team_id must be a valid UUID")
	}
	if req.MetricType == "" {
		errs.Add("metric_type", "metric_type is required")
	} else if len(req.MetricType) > 255 {
		errs.Add("metric_type", "metric_type must not exceed 255 characters")
	}
	if req.MetricValue == nil {
		errs.Add("metric_value", "metric_value is required")
	}

	start, startOK := time.Time{}, false
	if req.PeriodStart == "" {
		errs.Add("period_start", "period_start is required")
	} else if start, startOK = validation.ParseDate(req.PeriodStart); !startOK {
		errs.Add("period_start", "period_start must be a valid date (YYYY-MM-DD)")
	}
	if req.PeriodEnd == "" {
		errs.Add("period_end", "period_end is required")
	} else if end, ok := validation.ParseDate(req.PeriodEnd); !ok {
		errs.Add("period_end", "period_end must be a valid date (YYYY-MM-DD)")
	} else if startOK && end.Before(start) {
		errs.Add("period_end", "period_end must be on or after period_start")
	}

	return errs
}

func validateUpdateMetric(req dto.UpdateMetricRequest) validation.Errors {
	errs := validation.Errors{}

	if req.MetricType != nil {
		if *req.MetricType == "" {
			errs.Add("metric_type", "metric_type must not be empty")
		} else if len(*req.MetricType) > 255 {
			errs.Add("metric_type", "metric_type must not exceed 255 characters")
		}
	}
	if req.PeriodStart != nil {
		if _, ok := validation.ParseDate(*req.PeriodStart); !ok {
			errs.Add("period_start", "period_start must be a valid date (YYYY-MM-DD)")
		}
	}
	if req.PeriodEnd != nil {
		if _, ok := validation.ParseDate(*req.PeriodEnd); !ok {
			errs.Add("period_end", "period_end must be a valid date (YYYY-MM-DD)")
		}
	}

	return errs
}
