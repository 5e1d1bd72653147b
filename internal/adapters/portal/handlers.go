package portal

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"andaman_vendor/internal/adapters/auth"
	"andaman_vendor/internal/adapters/observability"
	"andaman_vendor/internal/app"
)

const OverviewPath = "/vendor/hotels"

type Handlers struct {
	editor   *app.Editor
	sessions *app.SessionStore
	tokens   *auth.Tokens
	pages    pages
}

func NewHandlers(editor *app.Editor, sessions *app.SessionStore, tokens *auth.Tokens) (*Handlers, error) {
	p, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Handlers{editor: editor, sessions: sessions, tokens: tokens, pages: p}, nil
}

func (h *Handlers) Mount(r chi.Router) {
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	r.Get(app.SignInPath, h.signIn)
	r.Group(func(r chi.Router) {
		r.Use(ResolveSession(h.tokens))
		r.Use(RequireVendor)
		r.Get(OverviewPath, h.overview)
		r.Get(OverviewPath+"/{serviceID}/edit", h.editHotel)
		r.Post(OverviewPath+"/{serviceID}/edit", h.submitHotel)
	})
}

type editPage struct {
	app.View
	Title       string
	Notice      string
	StarOptions []int
}

func (p editPage) Is(state string) bool { return p.State.String() == state }

func newEditPage(v app.View) editPage {
	return editPage{View: v, Title: "Edit hotel", StarOptions: []int{1, 2, 3, 4, 5}}
}

// statusFor maps an edit state to the HTTP status of its page.
func statusFor(s app.EditState) int {
	switch s {
	case app.StateBlockedUnverified, app.StateBlockedWrongType:
		return http.StatusForbidden
	case app.StateProfileMissing, app.StateNotFound:
		return http.StatusNotFound
	case app.StateError:
		return http.StatusBadGateway
	}
	return http.StatusOK
}

func serviceIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "serviceID"), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) signIn(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "signin", struct {
		Title  string
		Reason string
	}{Title: "Sign in", Reason: r.URL.Query().Get("reason")})
}

func (h *Handlers) overview(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "overview", struct {
		Title   string
		Updated string
	}{Title: "My hotels", Updated: r.URL.Query().Get("updated")})
}

func (h *Handlers) invalidID(w http.ResponseWriter) {
	page := newEditPage(app.View{State: app.StateNotFound, Message: "The hotel id in the address is not valid."})
	h.pages.render(w, http.StatusNotFound, "edit", page)
}

func (h *Handlers) editHotel(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := serviceIDParam(r)
	if !ok {
		h.invalidID(w)
		return
	}
	es := h.editor.Open(r.Context(), SessionFrom(r.Context()), serviceID)
	state := es.State()
	observability.ObserveEditOpen(state.String())
	if !state.Terminal() {
		h.sessions.Put(es)
	}
	h.pages.render(w, statusFor(state), "edit", newEditPage(es.View()))
}

func (h *Handlers) submitHotel(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := serviceIDParam(r)
	if !ok {
		h.invalidID(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := SessionFrom(r.Context())

	es, found := h.sessions.Get(r.PostForm.Get("edit_id"), sess.UserID, serviceID)
	if !found {
		// Expired or unknown: pass the gates again before accepting the post.
		es = h.editor.Open(r.Context(), sess, serviceID)
		if es.State().Terminal() {
			h.pages.render(w, statusFor(es.State()), "edit", newEditPage(es.View()))
			return
		}
		h.sessions.Put(es)
	}

	err := es.Edit(func(f *app.HotelForm) { f.ApplyValues(r.PostForm) })
	if err == nil {
		err = es.Submit(r.Context())
	}

	page := newEditPage(es.View())
	switch {
	case err == nil:
		observability.ObserveEditSubmit("ok")
		h.sessions.Delete(es.ID)
		http.Redirect(w, r, OverviewPath+"?updated="+strconv.FormatInt(serviceID, 10), http.StatusSeeOther)
	case errors.Is(err, app.ErrSubmitInFlight):
		observability.ObserveEditSubmit("in_flight")
		page.Notice = "Your changes are already being saved."
		h.pages.render(w, http.StatusConflict, "edit", page)
	case errors.Is(err, app.ErrNotReady):
		if es.State() == app.StateNavigated {
			http.Redirect(w, r, OverviewPath+"?updated="+strconv.FormatInt(serviceID, 10), http.StatusSeeOther)
			return
		}
		h.pages.render(w, statusFor(es.State()), "edit", page)
	case app.IsValidation(err):
		observability.ObserveEditSubmit("invalid")
		h.pages.render(w, http.StatusUnprocessableEntity, "edit", page)
	default:
		var rejected *app.RejectedError
		if errors.As(err, &rejected) {
			observability.ObserveEditSubmit("rejected")
			h.pages.render(w, http.StatusUnprocessableEntity, "edit", page)
			return
		}
		observability.ObserveEditSubmit("error")
		log.Warn().Err(err).Int64("service_id", serviceID).Msg("hotel submit failed")
		h.pages.render(w, http.StatusBadGateway, "edit", page)
	}
}
