package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/perfdash/dashboard-backend/internal/dto"
	"github.com/perfdash/dashboard-backend/internal/supabase"
	"github.com/perfdash/dashboard-backend/internal/validation"
)

type AuthHandler struct {
	sb *supabase.Client
}

func NewAuthHandler(sb *supabase.Client) *AuthHandler {
	return &AuthHandler{sb: sb}
}

// Register signs a new user up with the identity provider. Profile fields
// ride along as signup metadata.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	errs := validation.Errors{}
	if req.Email == "" {
		errs.Add("email", "email is required")
	} else if !validation.IsEmail(req.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if req.Password == "" {
		errs.Add("password", "password is required")
	} else if len(req.Password) < 8 {
		errs.Add("password", "password must be at least 8 characters")
	}
	if req.FullName == "" {
		errs.Add("full_name", "full_name is required")
	} else if len(req.FullName) > 255 {
		errs.Add("full_name", "full_name must not exceed 255 characters")
	}
	if req.Role != "" && !validation.OneOf(req.Role, "manager", "employee", "admin") {
		errs.Add("role", "role must be one of: manager, employee, admin")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	role := req.Role
	if role == "" {
		role = "employee"
	}

	resp, failure := h.sb.SignUp(req.Email, req.Password, map[string]any{
		"full_name": req.FullName,
		"role":      role,
	})
	if failure != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("Registration failed", failure.JSON()))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage("User registered successfully", resp))
}

// Login exchanges credentials for a session.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid request body"))
	}

	errs := validation.Errors{}
	if req.Email == "" {
		errs.Add("email", "email is required")
	} else if !validation.IsEmail(req.Email) {
		errs.Add("email", "email must be a valid email address")
	}
	if req.Password == "" {
		errs.Add("password", "password is required")
	}
	if errs.Any() {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.Invalid(errs))
	}

	resp, failure := h.sb.SignIn(req.Email, req.Password)
	if failure != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Invalid credentials", failure.JSON()))
	}

	var session dto.SessionData
	if err := json.Unmarshal(resp, &session); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailMessage("Invalid credentials"))
	}

	return c.JSON(dto.OKMessage("Login successful", session))
}

// Me resolves the bearer token to the identity it represents.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.FailMessage("No token provided"))
	}

	user, failure := h.sb.ResolveUser(token)
	if failure != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("Unauthorized", failure.JSON()))
	}

	return c.JSON(dto.OK(user.Raw))
}

// Logout is a static acknowledgment. Tokens are stateless bearer
// credentials; invalidation is the client's responsibility.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(dto.OKMessage("Logged out successfully. Clear tokens on client side.", nil))
}
