package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/schlac/mazepath/maze"
	"github.com/schlac/mazepath/repo"
	"github.com/schlac/mazepath/service"
)

const (
	defaultRecent = 20
	maxRecent     = 200
)

// SolveController handles HTTP requests for solving mazes.
type SolveController struct {
	solver service.Solver
	log    *logrus.Logger
}

// NewSolveController creates a SolveController.
func NewSolveController(s service.Solver, log *logrus.Logger) *SolveController {
	if log == nil {
		log = logrus.New()
	}
	return &SolveController{solver: s, log: log}
}

// Register mounts the solve routes.
func (c *SolveController) Register(route *gin.RouterGroup) {
	route.POST("/solve", c.solve)
	route.GET("/solve/:ID", c.byID)
	route.GET("/solves", c.recent)
}

// solve handles POST /solve.
func (c *SolveController) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := c.solver.Solve(ctx.Request.Context(), request.Maze)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSolveResponse(rec))
}

// byID handles GET /solve/:ID.
func (c *SolveController) byID(ctx *gin.Context) {
	rec, err := c.solver.ByID(ctx.Request.Context(), ctx.Param("ID"))
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSolveResponse(rec))
}

// recent handles GET /solves?limit=N.
func (c *SolveController) recent(ctx *gin.Context) {
	limit := defaultRecent
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > maxRecent {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and " + strconv.Itoa(maxRecent)})
			return
		}
		limit = n
	}

	recs, err := c.solver.Recent(ctx.Request.Context(), limit)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	out := make([]SolveResponse, len(recs))
	for i, r := range recs {
		out[i] = newSolveResponse(r)
	}

	ctx.JSON(http.StatusOK, gin.H{"solves": out})
}

// fail maps service errors to status codes.
func (c *SolveController) fail(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, maze.ErrMalformedMaze), errors.Is(err, maze.ErrMissingStartOrEnd):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrMazeTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, service.ErrInvalidID):
		status = http.StatusBadRequest
	case errors.Is(err, repo.ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		c.log.WithError(err).Error("solve request failed")
		ctx.JSON(status, gin.H{"error": "internal error"})
		return
	}

	ctx.JSON(status, gin.H{"error": err.Error()})
}
