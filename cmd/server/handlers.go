package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"courseplan/internal/milp"
	"courseplan/internal/model"
)

type solveResponse struct {
	Status               string                      `json:"status"`
	Score                int                         `json:"score"`
	Schedule             []model.Entry               `json:"schedule"`
	UnmetSoftConstraints []model.UnmetSoftConstraint `json:"unmet_soft_constraints"`
}

func registerRoutes(r *gin.Engine, l *zap.Logger, solver milp.Solver) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/v1/schedule/solve", solveHandler(l, solver))
}

func solveHandler(l *zap.Logger, solver milp.Solver) gin.HandlerFunc {
	scheduler := model.NewScheduler(solver, l)

	return func(c *gin.Context) {
		var problem model.Problem
		if err := c.ShouldBindJSON(&problem); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"status": "invalid_input",
				"reason": "malformed_body",
				"detail": err.Error(),
			})
			return
		}

		schedule, err := scheduler.Build(problem)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, solveResponse{
			Status:               "ok",
			Score:                schedule.Score,
			Schedule:             schedule.Entries,
			UnmetSoftConstraints: schedule.Unmet,
		})
	}
}

// writeError maps the engine's error taxonomy to HTTP statuses. The mapping
// is transport policy; the engine only reports kinds.
func writeError(c *gin.Context, err error) {
	var invalid *model.InvalidInputError
	if errors.As(err, &invalid) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status": "invalid_input",
			"reason": string(invalid.Kind),
			"detail": invalid.Detail,
		})
		return
	}

	var infeasible *model.InfeasibleError
	if errors.As(err, &infeasible) {
		body := gin.H{
			"status": "infeasible",
			"reason": string(infeasible.Kind),
		}
		if infeasible.Kind == model.InfeasibleNoCandidates {
			body["course_id"] = infeasible.CourseID
		}
		c.JSON(http.StatusUnprocessableEntity, body)
		return
	}

	var failure *model.SolverFailureError
	if errors.As(err, &failure) {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "solver_error",
			"detail": failure.Error(),
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"status": "solver_error",
		"detail": err.Error(),
	})
}
