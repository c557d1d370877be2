package container

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"prompt-catalog/internal/config"
	promptHandler "prompt-catalog/internal/domains/prompt/handler"
	"prompt-catalog/internal/domains/prompt/model"
	promptRepo "prompt-catalog/internal/domains/prompt/repository"
	promptService "prompt-catalog/internal/domains/prompt/service"
	"prompt-catalog/internal/infrastructure/render"
	"prompt-catalog/internal/infrastructure/seed"
	"prompt-catalog/pkg/logger"
	"prompt-catalog/pkg/metrics"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container owns every long-lived dependency of the application
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================

	Config   *config.Config
	Differ   render.Differ
	Renderer render.Renderer

	logCloser   io.Closer
	unsubscribe func()

	// ========================================
	// REPOSITORY LAYER
	// ========================================

	PromptRepo promptRepo.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================

	PromptService promptService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================

	PromptHandler *promptHandler.PromptHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads the config from the environment and builds the container
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return New(cfg)
}

// New builds the dependency graph in order:
// 1. Logger (depends on Config)
// 2. Formatters
// 3. Repository + metrics subscription
// 4. Service, then seed data
// 5. Handlers
func New(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: LOGGER
	// ========================================
	closer, err := logger.Init(logger.Config{
		Environment: cfg.App.Environment,
		Level:       cfg.Log.Level,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	c.logCloser = closer

	logger.Info("Initializing container", map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
		"version":     cfg.App.Version,
	})

	// ========================================
	// STEP 2: FORMATTERS
	// ========================================
	c.Differ = render.NewDiffer(cfg.Render.DiffEnabled)
	c.Renderer = render.NewRenderer(cfg.Render.MarkdownEnabled)

	log.Info().
		Bool("diff", c.Differ.Available()).
		Bool("markdown", c.Renderer.Available()).
		Msg("Formatters ready")

	// ========================================
	// STEP 3: REPOSITORY
	// ========================================
	c.PromptRepo = promptRepo.NewMemoryRepository()
	c.unsubscribe = c.PromptRepo.Subscribe(observeCatalog)

	// ========================================
	// STEP 4: SERVICE + SEED
	// ========================================
	c.PromptService = promptService.NewPromptService(c.PromptRepo)

	if cfg.Seed.Enabled {
		if err := c.seed(context.Background()); err != nil {
			c.Cleanup()
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
	}

	// ========================================
	// STEP 5: HANDLERS
	// ========================================
	c.PromptHandler = promptHandler.NewPromptHandler(c.PromptService, c.Differ, c.Renderer)

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) seed(ctx context.Context) error {
	now := time.Now()

	var (
		prompts []model.Prompt
		err     error
	)
	if c.Config.Seed.File != "" {
		prompts, err = seed.LoadFile(c.Config.Seed.File, now)
	} else {
		prompts, err = seed.Default(now)
	}
	if err != nil {
		return err
	}

	_, err = c.PromptService.Seed(ctx, prompts)
	return err
}

// observeCatalog publishes catalog gauges after every committed write
func observeCatalog(catalog model.Catalog) {
	versions := 0
	for _, p := range catalog.Prompts {
		versions += len(p.Versions)
	}
	metrics.ObserveCatalog(catalog.Revision, len(catalog.Prompts), versions)
}

// Cleanup releases container resources
func (c *Container) Cleanup() {
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}

	if c.logCloser != nil {
		if err := c.logCloser.Close(); err != nil {
			logger.Error("Failed to close log file", err)
		}
		c.logCloser = nil
	}
}
