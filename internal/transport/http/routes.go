// Package http implements the §6 wire protocol over gin, the transport
// library the teacher's API server uses throughout.
package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"variantsudoku/internal/solver/build"
	"variantsudoku/internal/solver/search"
	"variantsudoku/pkg/config"
	"variantsudoku/pkg/constants"
)

var cfg *config.Config

// RegisterRoutes wires every endpoint onto r, matching the teacher's
// single RegisterRoutes(r, cfg) entry point.
func RegisterRoutes(r *gin.Engine, c *config.Config) {
	cfg = c

	r.Use(requestIDMiddleware())

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/solve/first", solveFirstHandler)
		api.POST("/solve/nth", solveNthHandler)
		api.POST("/solve/count", solveCountHandler)
		api.POST("/solve/estimate", solveEstimateHandler)
		api.POST("/solve/step", solveStepHandler)
		api.POST("/solve/validate", solveValidateHandler)
	}
}

// requestIDMiddleware stamps every request with a correlation id,
// honoring one supplied by the caller and generating a fresh
// google/uuid otherwise, mirroring the teacher's device/session
// correlation pattern in spirit (there a JWT session token, here a
// per-request id since this service is stateless).
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(constants.RequestIDHeader, id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	if v, ok := c.Get("request_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": constants.APIVersion,
	})
}

// compileRequest decodes and builds a SolveRequest into a ready-to-search
// engine, or writes an error response and returns ok=false.
func compileRequest(c *gin.Context, req SolveRequest) (*search.Engine, bool) {
	shape, err := decodeShape(req.Shape)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return nil, false
	}
	given, err := decodeGivens(shape, req.Givens)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return nil, false
	}
	nodes, err := decodeConstraints(shape, req.Constraints)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return nil, false
	}
	if len(nodes) > constants.MaxHandlers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many constraints", "request_id": requestID(c)})
		return nil, false
	}

	compiled, err := build.Build(shape, given, nodes)
	if err != nil {
		log.Printf("request %s: build error: %v", requestID(c), err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return nil, false
	}
	return search.New(compiled), true
}

func solveTimeoutContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), cfg.SolveTimeout)
}

func solveFirstHandler(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	engine, ok := compileRequest(c, req)
	if !ok {
		return
	}
	ctx, cancel := solveTimeoutContext(c)
	defer cancel()

	sol, found, err := engine.NthSolution(ctx, 0)
	if err != nil {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"found": false, "request_id": requestID(c)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "solution": sol.Short(), "request_id": requestID(c)})
}

func solveNthHandler(c *gin.Context) {
	var req NthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	engine, ok := compileRequest(c, req.SolveRequest)
	if !ok {
		return
	}
	ctx, cancel := solveTimeoutContext(c)
	defer cancel()

	sol, found, err := engine.NthSolution(ctx, req.N)
	if err != nil {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"found": found, "solution": sol.Short(), "request_id": requestID(c)})
}

func solveCountHandler(c *gin.Context) {
	var req CountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	solCap := req.Cap
	if solCap <= 0 || solCap > constants.MaxSolutionCap {
		solCap = constants.DefaultSolutionCap
	}
	engine, ok := compileRequest(c, req.SolveRequest)
	if !ok {
		return
	}
	ctx, cancel := solveTimeoutContext(c)
	defer cancel()

	count, exact, err := engine.CountSolutions(ctx, solCap)
	if err != nil {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count, "exact": exact, "request_id": requestID(c)})
}

func solveEstimateHandler(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	engine, ok := compileRequest(c, req)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"estimate": engine.EstimateSolutions(), "request_id": requestID(c)})
}

func solveStepHandler(c *gin.Context) {
	var req StepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	engine, ok := compileRequest(c, req.SolveRequest)
	if !ok {
		return
	}
	grid, ok := engine.NthStep(req.Steps)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"found": false, "request_id": requestID(c)})
		return
	}
	cells := make([]string, 0, len(grid.Cells))
	for _, m := range grid.Cells {
		cells = append(cells, m.String())
	}
	c.JSON(http.StatusOK, gin.H{"found": true, "cells": cells, "request_id": requestID(c)})
}

func solveValidateHandler(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	shape, err := decodeShape(req.Shape)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	sol, err := decodeSolution(shape, req.Solution)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	engine, ok := compileRequest(c, req.SolveRequest)
	if !ok {
		return
	}
	valid, err := engine.ValidateLayout(sol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": requestID(c)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": valid, "request_id": requestID(c)})
}

// CompileFile decodes a SolveRequest JSON document (the same schema the
// HTTP endpoints bind) and builds it into a ready-to-search engine. It
// exists so cmd/solve can reuse the exact decode/build path the server
// uses, instead of re-implementing it.
func CompileFile(data []byte) (*search.Engine, error) {
	var req SolveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	shape, err := decodeShape(req.Shape)
	if err != nil {
		return nil, err
	}
	given, err := decodeGivens(shape, req.Givens)
	if err != nil {
		return nil, err
	}
	nodes, err := decodeConstraints(shape, req.Constraints)
	if err != nil {
		return nil, err
	}
	compiled, err := build.Build(shape, given, nodes)
	if err != nil {
		return nil, err
	}
	return search.New(compiled), nil
}
