package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardEmpty(t *testing.T) {
	app, _, _ := setupTestApp(t)
	managerToken, _ := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")

	resp := doJSON(t, app, "GET", "/dashboard", managerToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)

	summary := body["sentiment_summary"].(map[string]interface{})
	assert.Equal(t, float64(0), summary["positive"])
	assert.Equal(t, float64(0), summary["neutral"])
	assert.Equal(t, float64(0), summary["negative"])
	assert.Empty(t, body["team_feedback"])
}

func TestDashboardRequiresManager(t *testing.T) {
	app, _, _ := setupTestApp(t)
	employeeToken, _ := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")

	resp := doJSON(t, app, "GET", "/dashboard", employeeToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestDashboardCountsSumToFeedbackRows(t *testing.T) {
	app, _, _ := setupTestApp(t)
	aliceToken, _ := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")
	malloryToken, _ := registerAndLogin(t, app, "Mallory", "mallory@example.com", "manager")
	_, bobID := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")
	_, carolID := registerAndLogin(t, app, "Carol", "carol@example.com", "employee")

	createFeedback(t, app, aliceToken, bobID, "positive", nil)
	createFeedback(t, app, aliceToken, bobID, "negative", nil)
	createFeedback(t, app, aliceToken, carolID, "positive", nil)
	// Another manager's rows must not leak into Alice's rollup.
	createFeedback(t, app, malloryToken, bobID, "neutral", nil)

	resp := doJSON(t, app, "GET", "/dashboard", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)

	summary := body["sentiment_summary"].(map[string]interface{})
	assert.Equal(t, float64(2), summary["positive"])
	assert.Equal(t, float64(0), summary["neutral"])
	assert.Equal(t, float64(1), summary["negative"])

	team := body["team_feedback"].([]interface{})
	require.Len(t, team, 2)

	total := 0
	for _, raw := range team {
		entry := raw.(map[string]interface{})
		total += int(entry["feedback_count"].(float64))
		assert.Len(t, entry["feedbacks"], int(entry["feedback_count"].(float64)))
	}
	assert.Equal(t, 3, total)
}

// Full walkthrough: assignment, request, feedback, fulfillment,
// acknowledgment and rollup for one manager/employee pair.
func TestManagerEmployeeLifecycle(t *testing.T) {
	app, _, notifier := setupTestApp(t)
	aliceToken, aliceID := registerAndLogin(t, app, "Alice", "alice@example.com", "manager")
	bobToken, bobID := registerAndLogin(t, app, "Bob", "bob@example.com", "employee")

	resp := doJSON(t, app, "POST", "/teams/assign?employee_id="+bobID, aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "POST", "/feedback-requests/", bobToken, map[string]interface{}{
		"manager_id": aliceID,
		"message":    "please review Q2",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	requestID := decodeMap(t, resp)["id"]
	notifier.wait(t)

	feedback := createFeedback(t, app, aliceToken, bobID, "positive", []string{"communication"})

	resp = doJSON(t, app, "GET", "/feedback-requests/notifications", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	requests := decodeList(t, resp)
	require.Len(t, requests, 1)
	assert.Equal(t, requestID, requests[0]["id"])
	assert.Equal(t, "fulfilled", requests[0]["status"])

	resp = doJSON(t, app, "PATCH", "/feedbacks/"+feedback["id"].(string)+"/acknowledge", bobToken, map[string]interface{}{
		"reply": "Thanks!",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	acknowledged := decodeMap(t, resp)
	assert.Equal(t, true, acknowledged["acknowledged"])
	assert.Equal(t, "Thanks!", acknowledged["employee_reply"])

	resp = doJSON(t, app, "GET", "/dashboard", aliceToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeMap(t, resp)

	summary := body["sentiment_summary"].(map[string]interface{})
	assert.Equal(t, float64(1), summary["positive"])
	assert.Equal(t, float64(0), summary["neutral"])
	assert.Equal(t, float64(0), summary["negative"])

	team := body["team_feedback"].([]interface{})
	require.Len(t, team, 1)
	entry := team[0].(map[string]interface{})
	assert.Equal(t, bobID, entry["employee_id"])
	assert.Equal(t, "Bob", entry["employee_name"])
	assert.Equal(t, float64(1), entry["feedback_count"])
}
