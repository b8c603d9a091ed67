package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"warung/internal/handlers"
	"warung/internal/models"
	"warung/internal/repositories"
	"warung/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupApp builds a Fiber app over a fresh in-memory SQLite database with
// both handlers registered, mirroring the production wiring minus the broker.
func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.User{}))

	productService := services.NewProductService(repositories.NewGORMProductRepository(db), nil)
	userService := services.NewUserService(repositories.NewGORMUserRepository(db), nil)

	app := fiber.New()
	handlers.NewProductHandler(productService).RegisterRoutes(app)
	handlers.NewUserHandler(userService).RegisterRoutes(app)
	return app
}

// postCommand sends body as a JSON POST and returns the status plus the
// decoded response object.
func postCommand(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode, decodeBody(t, resp)
}

func getPath(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body), "response body: %s", raw)
	return body
}

func TestProductLifecycle(t *testing.T) {
	app := setupApp(t)

	// create
	status, body := postCommand(t, app, "/product",
		`{"command":"create","id":7,"name":"Widget","price":9.99,"quantity":3}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(7), body["id"])
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, 9.99, body["price"])
	assert.Equal(t, float64(3), body["quantity"])

	// retrieve
	status, body = getPath(t, app, "/product/7")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Widget", body["name"])

	// partial update leaves the other fields untouched
	status, body = postCommand(t, app, "/product",
		`{"command":"update","id":7,"quantity":5}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), body["quantity"])
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, 9.99, body["price"])

	// delete with one stale field is a confirmation failure
	status, body = postCommand(t, app, "/product",
		`{"command":"delete","id":7,"name":"Widget","price":9.99,"quantity":4}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body, "error")

	// the record is untouched after the failed delete
	status, body = getPath(t, app, "/product/7")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(5), body["quantity"])

	// delete with the current values succeeds
	status, body = postCommand(t, app, "/product",
		`{"command":"delete","id":7,"name":"Widget","price":9.99,"quantity":5}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "deleted", body["status"])

	// gone afterwards, for retrieval and for a repeated delete alike
	status, _ = getPath(t, app, "/product/7")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = postCommand(t, app, "/product",
		`{"command":"delete","id":7,"name":"Widget","price":9.99,"quantity":5}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductRejections(t *testing.T) {
	app := setupApp(t)

	// malformed JSON never reaches the engine
	status, body := postCommand(t, app, "/product", `{"command":"create",`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid payload", body["error"])

	// mistyped field values are malformed input as well
	status, _ = postCommand(t, app, "/product", `{"command":"create","id":"seven"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// missing envelope fields
	status, _ = postCommand(t, app, "/product", `{"id":7}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = postCommand(t, app, "/product", `{"command":"create"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, body = postCommand(t, app, "/product", `{"command":"create","id":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "id must be positive", body["error"])

	// unknown command
	status, body = postCommand(t, app, "/product", `{"command":"destroy","id":7}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid command", body["error"])

	// missing required field for create
	status, _ = postCommand(t, app, "/product",
		`{"command":"create","id":7,"name":"Widget","quantity":3}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// blank name
	status, _ = postCommand(t, app, "/product",
		`{"command":"create","id":7,"name":"  ","price":1,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// an integral quantity beyond int64 range is rejected, never stored
	status, _ = postCommand(t, app, "/product",
		`{"command":"create","id":8,"name":"Bulk","price":1,"quantity":1e19}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = getPath(t, app, "/product/8")
	assert.Equal(t, http.StatusNotFound, status)

	// create twice conflicts
	status, _ = postCommand(t, app, "/product",
		`{"command":"create","id":7,"name":"Widget","price":9.99,"quantity":3}`)
	assert.Equal(t, http.StatusOK, status)
	status, _ = postCommand(t, app, "/product",
		`{"command":"create","id":7,"name":"Widget","price":9.99,"quantity":3}`)
	assert.Equal(t, http.StatusConflict, status)

	// update with no recognized mutable fields
	status, body = postCommand(t, app, "/product", `{"command":"update","id":7}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "no updatable fields", body["error"])

	// the same empty update is still 400 for an id that does not exist
	status, _ = postCommand(t, app, "/product", `{"command":"update","id":999}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// update with one invalid field among valid ones changes nothing
	status, _ = postCommand(t, app, "/product",
		`{"command":"update","id":7,"name":"Gadget","price":-1}`)
	assert.Equal(t, http.StatusBadRequest, status)
	status, current := getPath(t, app, "/product/7")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Widget", current["name"])
	assert.Equal(t, 9.99, current["price"])

	// update and delete against an absent id
	status, _ = postCommand(t, app, "/product", `{"command":"update","id":99,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = postCommand(t, app, "/product",
		`{"command":"delete","id":99,"name":"X","price":1,"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProductGetInvalidID(t *testing.T) {
	app := setupApp(t)

	status, _ := getPath(t, app, "/product")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = getPath(t, app, "/product/abc")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = getPath(t, app, "/product/0")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = getPath(t, app, "/product/-4")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestUserLifecycle(t *testing.T) {
	app := setupApp(t)

	// create; the response must not leak the password in any form
	status, body := postCommand(t, app, "/user",
		`{"command":"create","id":1,"username":"alice","email":"alice@example.com","password":"hunter2"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["username"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "PasswordHash")

	status, body = getPath(t, app, "/user/1")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotContains(t, body, "password")

	// email shape is checked before anything is written
	status, _ = postCommand(t, app, "/user",
		`{"command":"create","id":2,"username":"bob","email":"bob-at-example.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	// a second user with the same username conflicts
	status, _ = postCommand(t, app, "/user",
		`{"command":"create","id":2,"username":"alice","email":"a2@example.com","password":"pw"}`)
	assert.Equal(t, http.StatusConflict, status)

	// partial update
	status, body = postCommand(t, app, "/user",
		`{"command":"update","id":1,"email":"new@example.com"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "new@example.com", body["email"])
	assert.Equal(t, "alice", body["username"])

	// delete with the wrong password is a confirmation failure
	status, _ = postCommand(t, app, "/user",
		`{"command":"delete","id":1,"username":"alice","email":"new@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, status)

	// delete with the current values and password succeeds
	status, body = postCommand(t, app, "/user",
		`{"command":"delete","id":1,"username":"alice","email":"new@example.com","password":"hunter2"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "deleted", body["status"])

	status, _ = getPath(t, app, "/user/1")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUserRenameToTakenUsernameConflicts(t *testing.T) {
	app := setupApp(t)

	status, _ := postCommand(t, app, "/user",
		`{"command":"create","id":1,"username":"alice","email":"alice@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = postCommand(t, app, "/user",
		`{"command":"create","id":2,"username":"bob","email":"bob@example.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = postCommand(t, app, "/user",
		`{"command":"update","id":2,"username":"alice"}`)
	assert.Equal(t, http.StatusConflict, status)

	// bob is unchanged after the rejected rename
	status, body := getPath(t, app, "/user/2")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "bob", body["username"])
}
