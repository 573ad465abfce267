package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gridsearch/chase"
	"gridsearch/game"
	"gridsearch/grid"
	"gridsearch/pathfinder"
	"gridsearch/searcher"
)

var ErrDepthLimit = errors.New("search depth exceeds the server limit")

type PathRequest struct {
	Layout    string         `json:"layout" binding:"required"`
	Heuristic string         `json:"heuristic,omitempty"`
	Start     *grid.Position `json:"start,omitempty"`
	Goal      *grid.Position `json:"goal,omitempty"`
}

type PathResponse struct {
	Path          []grid.Position `json:"path"`
	Cost          float64         `json:"cost"`
	Expanded      int             `json:"expanded"`
	Found         bool            `json:"found"`
	Admissible    bool            `json:"admissible"`
	Rendered      string          `json:"rendered"`
	ExecutionTime float64         `json:"executionTimeMs"`
}

type ActionRequest struct {
	Layout     string `json:"layout" binding:"required"`
	Algorithm  string `json:"algorithm,omitempty"`
	Depth      *int   `json:"depth,omitempty"`
	Evaluation string `json:"evaluation,omitempty"`
	TimeoutMs  int    `json:"timeoutMs,omitempty"`
}

type ActionResponse struct {
	Action        game.Action `json:"action"`
	Value         float64     `json:"value"`
	Depth         int         `json:"depth"`
	Nodes         int         `json:"nodes"`
	Leaves        int         `json:"leaves"`
	ExecutionTime float64     `json:"executionTimeMs"`
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

func (s *Server) handlePath(c *gin.Context) {
	var req PathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	g, err := grid.Parse(req.Layout)
	if err != nil {
		badRequest(c, err)
		return
	}
	if req.Start != nil {
		g.SetStart(*req.Start)
	}
	if req.Goal != nil {
		g.SetGoal(*req.Goal)
	}
	heuristic, err := pathfinder.HeuristicOption(req.Heuristic)
	if err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	res, err := pathfinder.FindPath(g, g.Start(), g.Goal(), heuristic)
	resp := PathResponse{
		Path:       []grid.Position{},
		Expanded:   res.Expanded,
		Found:      res.Found,
		Admissible: res.Admissible,
	}
	switch {
	case errors.Is(err, pathfinder.ErrUnreachable):
		// Reported through found=false
	case err != nil:
		badRequest(c, err)
		return
	default:
		resp.Path, _ = res.Path()
		resp.Cost, _ = res.Cost()
		g.MarkPath(resp.Path)
	}
	resp.ExecutionTime = elapsedMs(start)
	resp.Rendered = g.String()

	log.Debug().Msgf("path from %v to %v: found=%t cost=%.1f expanded=%d", g.Start(), g.Goal(), resp.Found, resp.Cost, resp.Expanded)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleAction(c *gin.Context) {
	req := ActionRequest{
		Algorithm:  s.search.Algorithm,
		Evaluation: s.search.Evaluation,
		TimeoutMs:  int(s.search.Timeout / time.Millisecond),
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	depth := s.search.Depth
	if req.Depth != nil {
		depth = *req.Depth
	}
	if depth > s.search.MaxDepth {
		badRequest(c, fmt.Errorf("%w: %d > %d", ErrDepthLimit, depth, s.search.MaxDepth))
		return
	}

	state, err := chase.Parse(req.Layout)
	if err != nil {
		badRequest(c, err)
		return
	}
	evaluate, err := game.LookupEvaluation(req.Evaluation)
	if err != nil {
		badRequest(c, err)
		return
	}
	srch, err := searcher.New(req.Algorithm, searcher.Config{Depth: depth, Evaluate: evaluate}, searcher.WithMetrics())
	if err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	var d searcher.Decision
	if req.TimeoutMs > 0 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
		d, err = srch.Deepen(ctx, state)
	} else {
		d, err = srch.SearchContext(c.Request.Context(), state)
	}
	if err != nil {
		log.Debug().Msgf("%s stopped early: %v", srch.Name(), err)
	}

	c.JSON(http.StatusOK, ActionResponse{
		Action:        d.Action,
		Value:         d.Value,
		Depth:         d.Depth,
		Nodes:         d.Metrics.Nodes,
		Leaves:        d.Metrics.Leaves,
		ExecutionTime: elapsedMs(start),
	})
}
