package notes

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"example.com/notes-web/internal/stringsx"
)

const (
	previewRunes  = 200
	displayLayout = "2006-01-02 15:04"
	msgBothNeeded = "Both title and content are required"
)

//go:embed templates/*.html
var templateFS embed.FS

type pageSet map[string]*template.Template

func mustLoadPages() pageSet {
	pages := pageSet{}
	for _, name := range []string{"index.html", "add.html", "edit.html"} {
		pages[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return pages
}

type noteView struct {
	ID      int64
	Title   string
	Preview string
	Created string
	Updated string
}

type formView struct {
	ID      int64
	Title   string
	Content string
	Error   string
}

func newNoteView(n Note) noteView {
	v := noteView{
		ID:      n.ID,
		Title:   n.Title,
		Preview: stringsx.Preview(n.Content, previewRunes),
		Created: n.CreatedAt.Local().Format(displayLayout),
	}
	if n.UpdatedAt != nil {
		v.Updated = n.UpdatedAt.Local().Format(displayLayout)
	}
	return v
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	notes := h.store.List(r.Context())
	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, newNoteView(n))
	}
	h.render(w, http.StatusOK, "index.html", map[string]any{"Notes": views})
}

func (h *Handlers) addForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "add.html", formView{})
}

func (h *Handlers) addSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	title, content := r.PostForm.Get("title"), r.PostForm.Get("content")

	_, err := h.store.Create(r.Context(), title, content)
	if errors.Is(err, ErrValidation) {
		h.render(w, http.StatusOK, "add.html", formView{Title: title, Content: content, Error: msgBothNeeded})
		return
	}
	if err != nil {
		h.internalPage(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) editForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err != nil {
		h.internalPage(w, r, err)
		return
	}
	h.render(w, http.StatusOK, "edit.html", formView{ID: n.ID, Title: n.Title, Content: n.Content})
}

func (h *Handlers) editSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := pageID(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	title, content := r.PostForm.Get("title"), r.PostForm.Get("content")

	_, err := h.store.Update(r.Context(), id, title, content)
	switch {
	case errors.Is(err, ErrNotFound):
		http.Redirect(w, r, "/", http.StatusFound)
	case errors.Is(err, ErrValidation):
		h.render(w, http.StatusOK, "edit.html", formView{ID: id, Title: title, Content: content, Error: msgBothNeeded})
	case err != nil:
		h.internalPage(w, r, err)
	default:
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (h *Handlers) deleteNote(w http.ResponseWriter, r *http.Request) {
	if id, ok := pageID(r); ok {
		if _, err := h.store.Delete(r.Context(), id); err != nil {
			h.internalPage(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handlers) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.WithError(err).WithField("template", name).Error("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handlers) internalPage(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithError(err).WithField("path", r.URL.Path).Error("request failed")
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func pageID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}
