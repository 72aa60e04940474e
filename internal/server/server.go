// Package server exposes the orrery over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
	"github.com/litescript/ls-orrery/internal/store"
	"github.com/litescript/ls-orrery/internal/version"
)

// Presets is the preset storage used by the /api/presets routes.
// *store.Store satisfies it.
type Presets interface {
	SavePreset(ctx context.Context, name string, doc store.Document) (store.Preset, error)
	Preset(ctx context.Context, id string) (store.Preset, error)
	Presets(ctx context.Context) ([]store.Preset, error)
}

// Server serves scene state and frames for a state.Manager.
type Server struct {
	app     *fiber.App
	mgr     *state.Manager
	presets Presets
	log     *logging.Logger
	now     func() time.Time
}

// New builds the fiber app and registers every route. presets may be nil,
// in which case the preset routes answer 503.
func New(mgr *state.Manager, presets Presets, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Discard()
	}
	s := &Server{
		mgr:     mgr,
		presets: presets,
		log:     log,
		now:     time.Now,
	}

	app := fiber.New(fiber.Config{
		AppName: "ls-orrery " + version.Version,
	})
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Stream:     log.Writer(logging.LevelDebug),
	}))

	app.Get("/health/live", s.live)

	api := app.Group("/api")
	api.Get("/scene", s.getScene)
	api.Get("/frame", s.getFrame)
	api.Get("/frame.svg", s.getFrameSVG)
	api.Post("/objects", s.addObject)
	api.Delete("/entities/:id", s.deleteEntity)
	api.Post("/select/:id", s.selectEntity)
	api.Post("/undo", s.undo)
	api.Post("/redo", s.redo)
	api.Get("/designs", s.listDesigns)
	api.Post("/designs", s.generateDesign)
	api.Post("/designs/:id/apply", s.applyDesign)
	api.Get("/presets", s.listPresets)
	api.Post("/presets", s.savePreset)
	api.Post("/presets/:id/load", s.loadPreset)

	s.app = app
	return s
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.log.Info("listening on %s", addr)
	return s.app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
}

// Shutdown stops the listener, waiting for in-flight requests until ctx
// expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// fail maps manager errors onto status codes.
func (s *Server) fail(c fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, state.ErrUnknownEntity),
		errors.Is(err, state.ErrUnknownDesign),
		errors.Is(err, store.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, state.ErrNoSelection):
		status = fiber.StatusConflict
	}
	if status == fiber.StatusInternalServerError {
		s.log.Error("%s %s: %v", c.Method(), c.Path(), err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (s *Server) live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"version": version.Version,
	})
}

func (s *Server) getScene(c fiber.Ctx) error {
	return c.JSON(s.mgr.Document())
}

func (s *Server) getFrame(c fiber.Ctx) error {
	return c.JSON(s.mgr.Snapshot(s.now()))
}

func (s *Server) getFrameSVG(c fiber.Ctx) error {
	svg := RenderSVG(s.mgr.Snapshot(s.now()))
	c.Set("Content-Type", "image/svg+xml")
	return c.SendString(svg)
}

func (s *Server) addObject(c fiber.Ctx) error {
	var req struct {
		Shape scene.Shape `json:"type"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON payload",
			})
		}
	}
	if req.Shape == "" {
		req.Shape = scene.ShapeCircle
	}
	if !req.Shape.Valid() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unknown shape " + string(req.Shape),
		})
	}
	id := s.mgr.AddObject(req.Shape)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id": id,
	})
}

func (s *Server) deleteEntity(c fiber.Ctx) error {
	removed, err := s.mgr.Delete(c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"removed": removed,
	})
}

func (s *Server) selectEntity(c fiber.Ctx) error {
	if err := s.mgr.Select(c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"selected": s.mgr.Selected(),
		"rings":    s.mgr.Rings(),
	})
}

func (s *Server) undo(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":      s.mgr.Undo(),
		"canUndo": s.mgr.CanUndo(),
		"canRedo": s.mgr.CanRedo(),
	})
}

func (s *Server) redo(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":      s.mgr.Redo(),
		"canUndo": s.mgr.CanUndo(),
		"canRedo": s.mgr.CanRedo(),
	})
}

func (s *Server) listDesigns(c fiber.Ctx) error {
	return c.JSON(s.mgr.Suggestions())
}

func (s *Server) generateDesign(c fiber.Ctx) error {
	d, err := s.mgr.GenerateDesign()
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (s *Server) applyDesign(c fiber.Ctx) error {
	if err := s.mgr.ApplyDesign(c.Params("id")); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"applied": c.Params("id"),
	})
}

func (s *Server) listPresets(c fiber.Ctx) error {
	if s.presets == nil {
		return s.noPresets(c)
	}
	presets, err := s.presets.Presets(c.Context())
	if err != nil {
		return s.fail(c, err)
	}
	type entry struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		CreatedAt time.Time `json:"createdAt"`
	}
	out := make([]entry, 0, len(presets))
	for _, p := range presets {
		out = append(out, entry{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt})
	}
	return c.JSON(out)
}

func (s *Server) savePreset(c fiber.Ctx) error {
	if s.presets == nil {
		return s.noPresets(c)
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &req); err != nil || req.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name required",
		})
	}
	p, err := s.presets.SavePreset(c.Context(), req.Name, s.mgr.Document())
	if err != nil {
		return s.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   p.ID,
		"name": p.Name,
	})
}

func (s *Server) loadPreset(c fiber.Ctx) error {
	if s.presets == nil {
		return s.noPresets(c)
	}
	p, err := s.presets.Preset(c.Context(), c.Params("id"))
	if err != nil {
		return s.fail(c, err)
	}
	s.mgr.Load(p.Document)
	return c.JSON(fiber.Map{
		"loaded": p.ID,
	})
}

func (s *Server) noPresets(c fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "preset storage disabled",
	})
}
