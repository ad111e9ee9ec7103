package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"courseplan/internal/milp"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerRoutes(r, zap.NewNop(), milp.NewGophersatSolver(0))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/schedule/solve", strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(recorder, request)
	return recorder
}

func TestSolveEndpointReturnsSchedule(t *testing.T) {
	recorder := post(newTestRouter(), `{
		"rooms": [{"id": 1, "capacity": 10}],
		"courses": [{"id": 1, "instructor_id": 1, "duration_slots": 2, "required_capacity": 5}],
		"instructors": [{"id": 1, "unavailable_slots": []}]
	}`)

	assert.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Status   string `json:"status"`
		Score    int    `json:"score"`
		Schedule []struct {
			CourseID  int `json:"course_id"`
			RoomID    int `json:"room_id"`
			StartSlot int `json:"start_slot"`
			EndSlot   int `json:"end_slot"`
		} `json:"schedule"`
	}
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Score)
	assert.Len(t, body.Schedule, 1)
	assert.Equal(t, 1, body.Schedule[0].CourseID)
	assert.Equal(t, 1, body.Schedule[0].RoomID)
	assert.Equal(t, 0, body.Schedule[0].StartSlot)
	assert.Equal(t, 2, body.Schedule[0].EndSlot)
}

func TestSolveEndpointRejectsInvalidInput(t *testing.T) {
	recorder := post(newTestRouter(), `{
		"rooms": [],
		"courses": [{"id": 1, "instructor_id": 1, "duration_slots": 2, "required_capacity": 5}],
		"instructors": [{"id": 1, "unavailable_slots": []}]
	}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body["status"])
	assert.Equal(t, "empty_collection", body["reason"])
	assert.Equal(t, "rooms", body["detail"])
}

func TestSolveEndpointRejectsMalformedBody(t *testing.T) {
	recorder := post(newTestRouter(), `{"rooms": `)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var body map[string]any
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "invalid_input", body["status"])
	assert.Equal(t, "malformed_body", body["reason"])
}

func TestSolveEndpointReportsInfeasibility(t *testing.T) {
	recorder := post(newTestRouter(), `{
		"rooms": [{"id": 1, "capacity": 10}, {"id": 2, "capacity": 10}],
		"courses": [
			{"id": 1, "instructor_id": 1, "duration_slots": 7, "required_capacity": 5},
			{"id": 2, "instructor_id": 1, "duration_slots": 7, "required_capacity": 5}
		],
		"instructors": [{"id": 1, "unavailable_slots": []}]
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body map[string]any
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "infeasible", body["status"])
	assert.Equal(t, "proven_by_solver", body["reason"])
}

func TestSolveEndpointReportsStaticInfeasibility(t *testing.T) {
	recorder := post(newTestRouter(), `{
		"rooms": [{"id": 1, "capacity": 10}],
		"courses": [{"id": 5, "instructor_id": 1, "duration_slots": 1, "required_capacity": 50}],
		"instructors": [{"id": 1, "unavailable_slots": []}]
	}`)

	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)

	var body map[string]any
	assert.Nil(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "infeasible", body["status"])
	assert.Equal(t, "course_with_no_candidates", body["reason"])
	assert.Equal(t, float64(5), body["course_id"])
}

func TestHealthz(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	newTestRouter().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
}
