package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feedloop/models"
)

func TestAssignEmployee(t *testing.T) {
	app, db, _ := setupTestApp(t)
	managerToken, _ := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")
	_, employeeID := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")

	resp := doJSON(t, app, "POST", "/teams/assign?employee_id="+employeeID, managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)
	assert.Contains(t, body["detail"], "Bob")

	// Second call with the same pair conflicts, and exactly one row exists.
	resp = doJSON(t, app, "POST", "/teams/assign?employee_id="+employeeID, managerToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.TeamAssignment{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAssignTargetMustBeEmployee(t *testing.T) {
	app, _, _ := setupTestApp(t)
	managerToken, _ := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")
	_, otherManagerID := registerAndLogin(t, app, "Mallory", "mallory@example.com", "manager")

	resp := doJSON(t, app, "POST", "/teams/assign?employee_id="+uuid.NewString(), managerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// A manager account is not assignable.
	resp = doJSON(t, app, "POST", "/teams/assign?employee_id="+otherManagerID, managerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAssignRequiresManagerRole(t *testing.T) {
	app, _, _ := setupTestApp(t)
	employeeToken, employeeID := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")

	resp := doJSON(t, app, "POST", "/teams/assign?employee_id="+employeeID, employeeToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestUnassignedEmployees(t *testing.T) {
	app, _, _ := setupTestApp(t)
	managerToken, _ := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")
	_, bobID := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")
	register(t, app, "Carol", "carol@example.com", "employee")

	resp := doJSON(t, app, "GET", "/unassigned-employees", managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decodeList(t, resp), 2)

	doJSON(t, app, "POST", "/teams/assign?employee_id="+bobID, managerToken, nil)

	resp = doJSON(t, app, "GET", "/unassigned-employees", managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	unassigned := decodeList(t, resp)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "Carol", unassigned[0]["name"])
}

func TestMyManager(t *testing.T) {
	app, _, _ := setupTestApp(t)
	managerToken, managerID := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")
	employeeToken, employeeID := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")

	resp := doJSON(t, app, "GET", "/feedback-requests/my-manager", employeeToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	doJSON(t, app, "POST", "/teams/assign?employee_id="+employeeID, managerToken, nil)

	resp = doJSON(t, app, "GET", "/feedback-requests/my-manager", employeeToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	manager := decodeMap(t, resp)
	assert.Equal(t, managerID, manager["id"])

	// Managers have no manager view of their own.
	resp = doJSON(t, app, "GET", "/feedback-requests/my-manager", managerToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
