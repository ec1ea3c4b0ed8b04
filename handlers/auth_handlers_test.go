package handlers

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"salestrend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testSecret = []byte("test-secret")

func userColumns() []string {
	return []string{"id", "name", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}
}

func TestHandleLogin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()

	h := &AuthHandlers{DB: mock, Secret: testSecret, TokenTTL: time.Hour}
	app := fiber.New()
	app.Post("/login", h.HandleLogin)

	login := func(body string) int {
		req := httptest.NewRequest("POST", "/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		if resp.StatusCode == 200 {
			out := decode(t, resp.Body)
			token, err := jwt.ParseWithClaims(out["accessToken"].(string), &models.JwtClaims{}, func(*jwt.Token) (interface{}, error) {
				return testSecret, nil
			})
			require.NoError(t, err)
			claims := token.Claims.(*models.JwtClaims)
			assert.Equal(t, "u-1", claims.UserID)
			assert.Equal(t, "analyst", claims.Role)
		}
		return resp.StatusCode
	}

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("ana@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).AddRow("u-1", "Ana", "ana@example.com", string(hash), "analyst", true, now, now))
	assert.Equal(t, 200, login(`{"email":"Ana@Example.com","password":"hunter2"}`))

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("ana@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).AddRow("u-1", "Ana", "ana@example.com", string(hash), "analyst", true, now, now))
	assert.Equal(t, 401, login(`{"email":"ana@example.com","password":"wrong"}`))

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("ana@example.com").
		WillReturnRows(pgxmock.NewRows(userColumns()).AddRow("u-1", "Ana", "ana@example.com", string(hash), "analyst", false, now, now))
	assert.Equal(t, 401, login(`{"email":"ana@example.com","password":"hunter2"}`))

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)
	assert.Equal(t, 401, login(`{"email":"nobody@example.com","password":"x"}`))

	mock.ExpectQuery("SELECT id, name, email, password_hash").
		WithArgs("ana@example.com").
		WillReturnError(errors.New("connection refused"))
	assert.Equal(t, 500, login(`{"email":"ana@example.com","password":"x"}`))

	assert.Equal(t, 400, login(`{"email":""}`))
	require.NoError(t, mock.ExpectationsWereMet())
}
