package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/visagelabs/go-visage/pkg/rig"
)

// handleState reports the observable engine state.
func (s *Server) handleState(c *fiber.Ctx) error {
	category, variant := s.engine.CurrentCategory()
	return c.JSON(fiber.Map{
		"pad":         s.engine.CurrentPAD(),
		"category":    category,
		"variant":     variant,
		"state":       s.engine.State().String(),
		"subscribers": s.Subscribers(),
	})
}

// ClassifyRequest carries one utterance.
type ClassifyRequest struct {
	Utterance string `json:"utterance"`
}

func (s *Server) handleClassify(c *fiber.Ctx) error {
	var req ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	category, variant := s.engine.Classify(req.Utterance)
	return c.JSON(fiber.Map{
		"category": category,
		"variant":  variant,
		"color":    s.engine.Lexicon().Color(category),
	})
}

// PulseRequest is one external emotion reading.
type PulseRequest struct {
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
	Focus   float64 `json:"focus"`
	Gesture string  `json:"gesture"`
}

func (s *Server) handlePulse(c *fiber.Ctx) error {
	var req PulseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.engine.PushEmotionPulse(req.Valence, req.Arousal, req.Focus, req.Gesture)
	return c.JSON(fiber.Map{"pad": s.engine.CurrentPAD()})
}

// PointRequest is a rig-space target point.
type PointRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleGaze(c *fiber.Ctx) error {
	var req PointRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.engine.SetGazeTarget(rig.Vec2{X: req.X, Y: req.Y})
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleHead(c *fiber.Ctx) error {
	var req PointRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.engine.SetHeadTarget(rig.Vec2{X: req.X, Y: req.Y})
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleClearTargets(c *fiber.Ctx) error {
	s.engine.ClearTargets()
	return c.SendStatus(fiber.StatusNoContent)
}

// SpeakingRequest switches the lipsync layer and feeds the audio level.
type SpeakingRequest struct {
	Speaking bool    `json:"speaking"`
	Level    float64 `json:"level"`
}

func (s *Server) handleSpeaking(c *fiber.Ctx) error {
	var req SpeakingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.engine.SetSpeaking(req.Speaking)
	s.engine.SetAudioLevel(req.Level)
	return c.SendStatus(fiber.StatusNoContent)
}

// GestureRequest names a gesture to play.
type GestureRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleGesture(c *fiber.Ctx) error {
	var req GestureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	s.engine.TriggerGesture(req.Name)
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleReveal(c *fiber.Ctx) error {
	s.engine.StartReveal()
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	return c.JSON(s.engine.History().Records())
}

// handleLexicon lists the categories with their dashboard colors and
// variant pools.
func (s *Server) handleLexicon(c *fiber.Ctx) error {
	lex := s.engine.Lexicon()

	out := make([]fiber.Map, 0, len(lex.Categories()))
	for _, cat := range lex.Categories() {
		out = append(out, fiber.Map{
			"category": cat,
			"color":    lex.Color(cat),
			"variants": lex.Variants(cat),
		})
	}
	return c.JSON(out)
}
