package handler

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"era-quiz/internal/domain"
	"era-quiz/internal/logger"
	"era-quiz/internal/middleware"
	"era-quiz/internal/navigation"
	"era-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type quizPageData struct {
	State domain.ViewState
}

type resultsPageData struct {
	View domain.ResultView
}

// PageHandler serves the quiz and results pages.
type PageHandler struct {
	pages *service.QuizPages
	nav   *navigation.Service
}

// NewPageHandler creates a new PageHandler instance
func NewPageHandler(pages *service.QuizPages, nav *navigation.Service) *PageHandler {
	return &PageHandler{pages: pages, nav: nav}
}

// Register mounts the page routes. The session middleware must run first.
func (h *PageHandler) Register(r fiber.Router) {
	r.Get("/", h.Index)
	r.Get(domain.QuizPath, h.QuizPage)
	r.Post(domain.QuizPath+"/email", h.UpdateEmail)
	r.Post(domain.QuizPath, h.Submit)
	r.Get(domain.ResultsPath, h.ResultsPage)
	r.Post(domain.ResultsPath+"/back", h.Back)
}

func (h *PageHandler) history(c *fiber.Ctx) *navigation.History {
	return h.nav.Session(middleware.SessionID(c))
}

func render(c *fiber.Ctx, name string, data any) error {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return domain.NewInternalError("failed to render page", err)
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// redirectToLocation sends the browser to the session's current location.
func (h *PageHandler) redirectToLocation(c *fiber.Ctx) error {
	loc, err := h.history(c).Location(c.UserContext())
	if err != nil {
		return err
	}
	if loc == "" {
		loc = domain.QuizPath
	}
	return c.Redirect(loc, fiber.StatusSeeOther)
}

// Index handles GET /
func (h *PageHandler) Index(c *fiber.Ctx) error {
	return h.redirectToLocation(c)
}

// QuizPage handles GET /quiz
func (h *PageHandler) QuizPage(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	if err := h.history(c).Visit(c.UserContext(), domain.QuizPath); err != nil {
		return err
	}
	page := h.pages.Mount(sid)
	return render(c, "quiz.html", quizPageData{State: page.State()})
}

// UpdateEmail handles POST /quiz/email
func (h *PageHandler) UpdateEmail(c *fiber.Ctx) error {
	page := h.pages.Mount(middleware.SessionID(c))
	page.UpdateEmail(strings.Clone(c.FormValue("email")))
	return c.Redirect(domain.QuizPath, fiber.StatusSeeOther)
}

// Submit handles POST /quiz. The outcome is visible through the session's
// location: the results page on success, the quiz page with an error otherwise.
func (h *PageHandler) Submit(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	page := h.pages.Mount(sid)
	page.UpdateEmail(strings.Clone(c.FormValue("email")))
	page.Submit(c.UserContext())

	if state := page.State(); state.HasError() {
		logger.Get().Info("Quiz submission failed",
			zap.String("session_id", sid),
			zap.String("error", state.Error),
		)
		return c.Redirect(domain.QuizPath, fiber.StatusSeeOther)
	}
	return h.redirectToLocation(c)
}

// ResultsPage handles GET /results. Entering it unmounts the quiz page.
func (h *PageHandler) ResultsPage(c *fiber.Ctx) error {
	sid := middleware.SessionID(c)
	hist := h.history(c)
	if err := hist.Visit(c.UserContext(), domain.ResultsPath); err != nil {
		return err
	}
	h.pages.Unmount(sid)

	view, err := service.NewResultPage(hist).Mount(c.UserContext())
	if err != nil {
		logger.Get().Warn("Rendering results without transition state",
			zap.String("session_id", sid),
			zap.Error(err),
		)
	}
	return render(c, "results.html", resultsPageData{View: view})
}

// Back handles POST /results/back. Without a previous entry the browser stays
// where it is.
func (h *PageHandler) Back(c *fiber.Ctx) error {
	path, ok, err := service.NewResultPage(h.history(c)).GoBack(c.UserContext())
	if err != nil {
		return err
	}
	if !ok {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}
