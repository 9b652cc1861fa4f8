package notes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

const (
	msgRequired = "Title and content are required"
	msgNotFound = "Note not found"
	msgDeleted  = "Note deleted successfully"
	msgInternal = "internal error"
)

type Handlers struct {
	store Store
	log   logrus.FieldLogger
	pages pageSet
}

// Store is an abstraction over the note store.
// It allows unit-testing handlers without touching storage.
type Store interface {
	List(ctx context.Context) []Note
	Get(ctx context.Context, id int64) (Note, error)
	Create(ctx context.Context, title, content string) (Note, error)
	Update(ctx context.Context, id int64, title, content string) (Note, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

func NewHandlers(store Store, log logrus.FieldLogger) *Handlers {
	return &Handlers{
		store: store,
		log:   log,
		pages: mustLoadPages(),
	}
}

func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", h.index)
	r.Get("/add", h.addForm)
	r.Post("/add", h.addSubmit)
	r.Get("/edit/{id:[0-9]+}", h.editForm)
	r.Post("/edit/{id:[0-9]+}", h.editSubmit)
	r.Get("/delete/{id:[0-9]+}", h.deleteNote)

	r.Route("/api/notes", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)

		r.Route("/{id:[0-9]+}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Put("/", h.update)
			r.Delete("/", h.delete)
		})
	})

	return r
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.List(r.Context()))
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	n, err := h.store.Create(r.Context(), req.Title, req.Content)
	if errors.Is(err, ErrValidation) {
		writeJSON(w, http.StatusBadRequest, errorBody(msgRequired))
		return
	}
	if err != nil {
		h.internalJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, errorBody(msgNotFound))
		return
	}
	if err != nil {
		h.internalJSON(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}

	n, err := h.store.Update(r.Context(), id, req.Title, req.Content)
	switch {
	case errors.Is(err, ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(msgNotFound))
	case errors.Is(err, ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody(msgRequired))
	case err != nil:
		h.internalJSON(w, r, err)
	default:
		writeJSON(w, http.StatusOK, n)
	}
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	removed, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.internalJSON(w, r, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, errorBody(msgNotFound))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msgDeleted})
}

func (h *Handlers) internalJSON(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	writeJSON(w, http.StatusInternalServerError, errorBody(msgInternal))
}

// parseID reads the {id} URL parameter. The route pattern only admits
// digits, so the remaining failure is an id that overflows int64.
func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid id"))
		return 0, false
	}
	return id, true
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
