package proxy

import (
	"ecosort/app/client/gemini"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/do"
)

// genericError is relayed when the upstream fails without a body.
var genericError = []byte(`{"error":{"message":"upstream request failed"}}`)

// Service is the relay between browser or terminal clients and the
// generative-language endpoint. It attaches the server-held credential
// and passes bodies through unchanged in both directions. No retry, no
// rate limiting, no shape validation.
type Service struct {
	upstream *gemini.Upstream
}

func New(di *do.Injector) (*Service, error) {
	return NewService(do.MustInvoke[*gemini.Upstream](di)), nil
}

func NewService(upstream *gemini.Upstream) *Service {
	return &Service{upstream: upstream}
}

func (s *Service) RegisterRoutes(r fiber.Router) {
	r.Post("/api/gemini", s.handleGenerate)
	r.Get("/health", s.handleHealth)
}

func (s *Service) handleGenerate(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	status, body, err := s.upstream.Generate(c.UserContext(), c.Body())
	if err != nil {
		slog.Error("Upstream call failed", "error", err)

		return c.Status(fiber.StatusInternalServerError).Send(genericError)
	}

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		slog.Error("Upstream returned error status",
			"status", status,
			"body_size", len(body),
		)

		if len(body) == 0 {
			return c.Status(fiber.StatusInternalServerError).Send(genericError)
		}

		return c.Status(fiber.StatusInternalServerError).Send(body)
	}

	return c.Send(body)
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
