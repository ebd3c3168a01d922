// Package stubapi serves a local stand-in for the remote quiz endpoint. It
// picks a random era and an image URL under the configured image base.
package stubapi

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"era-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Eras lists every era the quiz can hand out.
var Eras = []string{
	"1989",
	"evermore",
	"fearless",
	"folklore",
	"lover",
	"midnights",
	"reputation",
	"speak-now",
	"tloas",
	"ttpd",
}

// QuizResponse is the body of GET /api/quiz.
type QuizResponse struct {
	Era      string `json:"era"`
	ImageURL string `json:"image_url"`
	Message  string `json:"message"`
}

// ErrorResponse mirrors the upstream error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Handler answers quiz requests.
type Handler struct {
	imageBaseURL string
	images       map[string][]string

	mu   sync.Mutex
	rand *rand.Rand
}

// Option configures a Handler.
type Option func(*Handler)

// WithRand fixes the random source, for deterministic tests.
func WithRand(r *rand.Rand) Option {
	return func(h *Handler) {
		h.rand = r
	}
}

// WithImages sets the image object names available per era. Eras without
// images answer 500, as the upstream does.
func WithImages(images map[string][]string) Option {
	return func(h *Handler) {
		h.images = images
	}
}

// NewHandler creates a stub handler. By default every era has one image named
// "<era>/cover.jpg".
func NewHandler(imageBaseURL string, opts ...Option) *Handler {
	images := make(map[string][]string, len(Eras))
	for _, era := range Eras {
		images[era] = []string{era + "/cover.jpg"}
	}
	h := &Handler{
		imageBaseURL: strings.TrimRight(imageBaseURL, "/"),
		images:       images,
		rand:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) pick(n int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rand.Intn(n)
}

// Register mounts the stub routes on app.
func (h *Handler) Register(app fiber.Router) {
	app.Get("/api/quiz", h.GetQuiz)
}

// GetQuiz handles GET /api/quiz
func (h *Handler) GetQuiz(c *fiber.Ctx) error {
	era := Eras[h.pick(len(Eras))]
	logger.Get().Info("Selected era", zap.String("era", era))

	images := h.images[era]
	if len(images) == 0 {
		logger.Get().Error("No images found for era", zap.String("era", era))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "No images available for the selected era",
		})
	}
	image := images[h.pick(len(images))]

	return c.JSON(QuizResponse{
		Era:      era,
		ImageURL: h.imageBaseURL + "/" + image,
		Message:  "Quiz item generated successfully",
	})
}
