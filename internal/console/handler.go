package console

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MadinaDev2107/Group-Manager/internal/model"
	"github.com/MadinaDev2107/Group-Manager/internal/utils"
	"github.com/MadinaDev2107/Group-Manager/internal/viewstate"
)

const sessionCookie = "console_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"id": func(id *int64) string {
		if id == nil {
			return ""
		}
		return strconv.FormatInt(*id, 10)
	},
	"sameID": func(a, b *int64) bool {
		return a != nil && b != nil && *a == *b
	},
}).ParseFS(templateFS, "templates/index.html"))

type ctxKey struct{}

type Handler struct {
	sessions *Sessions
	exporter *Exporter
	timeout  time.Duration
}

// NewHandler serves the console page. timeout bounds each backend round trip.
func NewHandler(sessions *Sessions, exporter *Exporter, timeout time.Duration) *Handler {
	return &Handler{sessions: sessions, exporter: exporter, timeout: timeout}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/", h.index)

		r.Route("/groups", func(r chi.Router) {
			r.Post("/", h.submitGroup)
			r.Post("/new", h.action(func(c *Console, _ *http.Request) { c.OpenGroupModal() }))
			r.Post("/close", h.action(func(c *Console, _ *http.Request) { c.CloseGroupModal() }))
			r.Post("/{id}/filter", h.filterGroup)
		})

		r.Route("/students", func(r chi.Router) {
			r.Post("/", h.submitStudent)
			r.Post("/new", h.action(func(c *Console, _ *http.Request) { c.OpenAddStudent() }))
			r.Post("/close", h.action(func(c *Console, _ *http.Request) { c.CloseStudentModal() }))
			r.Post("/{id}/edit", h.editStudent)
			r.Post("/{id}/delete", h.deleteStudent)
		})

		r.Post("/search", h.search)
		r.Get("/export.pdf", h.exportPDF)
		r.Post("/export/archive", h.archive)
	})

	return r
}

// withSession attaches the caller's console, starting and mounting a new one
// when the cookie is missing or has expired.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var c *Console
		if cookie, err := r.Cookie(sessionCookie); err == nil {
			c, _ = h.sessions.Get(cookie.Value)
		}

		if c == nil {
			var id string
			id, c = h.sessions.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			ctx, cancel := h.backendContext(r)
			c.Mount(ctx) // error sudah tampil di notice
			cancel()
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, c)))
	})
}

func consoleFrom(r *http.Request) *Console {
	return r.Context().Value(ctxKey{}).(*Console)
}

func (h *Handler) backendContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

type pageData struct {
	viewstate.View
	Editing bool
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	v := consoleFrom(r).View()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTemplate.Execute(w, pageData{View: v, Editing: v.StudentMode == viewstate.EditDraft}); err != nil {
		log.Printf("console: render: %v", err)
	}
}

func back(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// action wraps a state-only change that needs no backend call.
func (h *Handler) action(fn func(*Console, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fn(consoleFrom(r), r)
		back(w, r)
	}
}

func (h *Handler) submitGroup(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)
	if err := r.ParseForm(); err != nil {
		c.Notify("invalid form: " + err.Error())
		back(w, r)
		return
	}

	err := c.EditGroupDraft(model.Group{
		Name:   r.PostFormValue("name"),
		Status: utils.IsChecked(r.PostFormValue("status")),
	})
	if err == nil {
		ctx, cancel := h.backendContext(r)
		defer cancel()
		c.SubmitGroup(ctx)
	}
	back(w, r)
}

func (h *Handler) submitStudent(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)
	if err := r.ParseForm(); err != nil {
		c.Notify("invalid form: " + err.Error())
		back(w, r)
		return
	}

	err := c.EditStudentDraft(model.Student{
		Fullname: r.PostFormValue("fullname"),
		Age:      r.PostFormValue("age"),
		GroupID:  utils.ParseOptionalID(r.PostFormValue("group_id")),
		Status:   utils.IsChecked(r.PostFormValue("status")),
	})
	if err == nil {
		ctx, cancel := h.backendContext(r)
		defer cancel()
		c.SubmitStudent(ctx)
	}
	back(w, r)
}

func (h *Handler) editStudent(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)
	id, ok := pathID(c, r)
	if ok {
		c.OpenEditStudent(id)
	}
	back(w, r)
}

func (h *Handler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)
	id, ok := pathID(c, r)
	if ok {
		ctx, cancel := h.backendContext(r)
		defer cancel()
		c.DeleteStudent(ctx, id)
	}
	back(w, r)
}

func (h *Handler) filterGroup(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)
	id, ok := pathID(c, r)
	if ok {
		ctx, cancel := h.backendContext(r)
		defer cancel()
		c.FilterByGroup(ctx, id)
	}
	back(w, r)
}

// search reads the free-text filter as a group id.
func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)

	ctx, cancel := h.backendContext(r)
	defer cancel()
	c.FilterByGroup(ctx, utils.ParseSearchID(r.FormValue("q")))
	back(w, r)
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)

	pdf, err := h.exporter.RosterPDF(c.View())
	if err != nil {
		log.Printf("console: export: %v", err)
		c.Notify(err.Error())
		back(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="roster.pdf"`)
	w.Write(pdf)
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	c := consoleFrom(r)

	ctx, cancel := h.backendContext(r)
	defer cancel()

	url, err := h.exporter.Archive(ctx, c.View())
	switch {
	case errors.Is(err, ErrArchiveDisabled):
		c.Notify(err.Error())
	case err != nil:
		log.Printf("console: %v", err)
		c.Notify(err.Error())
	default:
		c.Notify("Roster archived: " + url)
	}
	back(w, r)
}

func pathID(c *Console, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		c.Notify("invalid id " + strconv.Quote(chi.URLParam(r, "id")))
		return 0, false
	}
	return id, true
}
