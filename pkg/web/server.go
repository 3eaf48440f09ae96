// Package web serves the dashboard API and the live rig-frame stream.
package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/visagelabs/go-visage/internal/log"
	"github.com/visagelabs/go-visage/pkg/animator"
	"github.com/visagelabs/go-visage/pkg/hub"
	"github.com/visagelabs/go-visage/pkg/visage"
)

// Server exposes one engine over REST plus a websocket frame stream.
type Server struct {
	app    *fiber.App
	port   string
	engine *visage.Engine
	frames *hub.Hub
}

// NewServer wires the routes over the given engine.
func NewServer(port string, engine *visage.Engine) *Server {
	s := &Server{
		port:   port,
		engine: engine,
		frames: hub.New("rig"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "visage dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development.
	app.Use(cors.New())

	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Post("/classify", s.handleClassify)
	api.Post("/pulse", s.handlePulse)
	api.Post("/gaze", s.handleGaze)
	api.Post("/head", s.handleHead)
	api.Delete("/targets", s.handleClearTargets)
	api.Post("/speaking", s.handleSpeaking)
	api.Post("/gesture", s.handleGesture)
	api.Post("/reveal", s.handleReveal)
	api.Get("/history", s.handleHistory)
	api.Get("/lexicon", s.handleLexicon)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/rig", websocket.New(s.handleRigWS))

	s.app = app
	return s
}

// Start runs the frame hub and blocks serving HTTP.
func (s *Server) Start() error {
	log.Info("dashboard listening", "port", s.port)
	go s.frames.Run()
	return s.app.Listen(":" + s.port)
}

// StartAsync serves in a goroutine.
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server stopped", "error", err)
		}
	}()
}

// PublishFrame pushes one animation snapshot to all rig subscribers.
func (s *Server) PublishFrame(snap animator.Snapshot) {
	if s.frames.SubscriberCount() == 0 {
		return
	}
	if err := s.frames.Publish(hub.TypeFrame, snap); err != nil {
		log.Warn("frame publish failed", "error", err)
	}
}

// Subscribers returns the current rig-stream subscriber count.
func (s *Server) Subscribers() int {
	return s.frames.SubscriberCount()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// handleRigWS upgrades a connection and runs its hub pumps until it
// closes.
func (s *Server) handleRigWS(c *websocket.Conn) {
	client := hub.NewClient(s.frames, c)
	client.Run()
}
