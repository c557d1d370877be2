package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"prompt-catalog/internal/shared/middleware"
	"prompt-catalog/internal/shared/response"
	"prompt-catalog/pkg/container"
	"prompt-catalog/pkg/metrics"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, "Route not found")
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		c.PromptHandler.RegisterRoutes(v1)
	}

	return router
}

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		catalog := appCtx.PromptService.ListPrompts(ctx.Request.Context())

		response.Success(ctx, http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"catalog": gin.H{
				"prompts":  len(catalog.Prompts),
				"revision": catalog.Revision,
			},
			"formatters": gin.H{
				"diff":     appCtx.Differ.Available(),
				"markdown": appCtx.Renderer.Available(),
			},
		})
	}
}
