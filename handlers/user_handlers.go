package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"salestrend/middleware"
	"salestrend/models"
	"salestrend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"
)

// CreateUserRequest is the body of POST /api/v1/admin/users.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// HandleCreateUser creates an admin or analyst account.
// POST /api/v1/admin/users
func (h *AuthHandlers) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user creation request: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Cannot parse JSON"})
	}

	if req.Email == "" || req.Password == "" || req.Name == "" || req.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Missing required fields (name, email, password, role)"})
	}
	role, ok := utils.ValidateAndNormalizeRole(req.Role)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Role must be admin or analyst"})
	}

	cost := h.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), cost)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not process password"})
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, role, is_active, created_at, updated_at`

	var created models.User
	err = h.DB.QueryRow(c.UserContext(), query, uuid.NewString(), req.Name, strings.ToLower(req.Email), string(hashedPassword), role).Scan(
		&created.ID, &created.Name, &created.Email, &created.Role, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"success": false, "message": "A user with this email already exists"})
		}
		log.Printf("Error creating user in database: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Could not create user"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

// HandleListUsers returns a paginated list of operator accounts.
// GET /api/v1/admin/users?page=1&pageSize=20
func (h *AuthHandlers) HandleListUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if pageSize > 100 {
		pageSize = 100
	}
	pagination := utils.CreatePagination(0, page, pageSize)

	var total int
	if err := h.DB.QueryRow(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		log.Printf("Error counting users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve users"})
	}

	query := `
		SELECT id, name, email, role, is_active, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := h.DB.Query(ctx, query, pagination.PageSize, pagination.Offset())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve users"})
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
			log.Printf("Error scanning user row: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve users"})
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error iterating users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to retrieve users"})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       users,
		"pagination": utils.CreatePagination(total, pagination.CurrentPage, pagination.PageSize),
	})
}

// HandleSetUserStatus activates or deactivates a user. Deactivated users
// cannot log in; tokens already issued stay valid until they expire.
// PUT /api/v1/admin/users/:userId/status
func (h *AuthHandlers) HandleSetUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var body struct {
		IsActive bool `json:"is_active"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "Invalid request body"})
	}
	if claims, err := middleware.ExtractClaims(c); err == nil && claims.UserID == userID && !body.IsActive {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": "You cannot deactivate your own account"})
	}

	tag, err := h.DB.Exec(c.UserContext(), "UPDATE users SET is_active = $1, updated_at = NOW() WHERE id = $2", body.IsActive, userID)
	if err != nil {
		log.Printf("Error updating status for user %s: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "message": "Failed to update user status"})
	}
	if tag.RowsAffected() == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"success": false, "message": "User not found"})
	}

	statusMsg := "deactivated"
	if body.IsActive {
		statusMsg = "activated"
	}
	return c.JSON(fiber.Map{"success": true, "message": fmt.Sprintf("User %s successfully", statusMsg)})
}
