// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"andaman_vendor/internal/adapters/auth"
	"andaman_vendor/internal/app"
	"andaman_vendor/internal/domain"
)

const maxBodyBytes = 1 << 20

const (
	msgNotFoundOrForbidden = "Hotel not found or you do not have permission to edit it."
	msgHotelVendorsOnly    = "Only verified hotel vendors can manage hotels."
)

type Handlers struct {
	Q      *app.QueryService
	U      *app.UpdateService
	Tokens *auth.Tokens
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		r.Get("/islands", h.listIslands)
		r.Group(func(r chi.Router) {
			r.Use(Authenticate(h.Tokens))
			r.Get("/vendors/{userID}/profile", h.getProfile)
			r.Get("/vendor/hotels/{serviceID}", h.getHotel)
			r.Put("/vendor/hotels/{serviceID}", h.updateHotel)
		})
	})
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Data: nil, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable answers 304 when the client already has this representation.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to encode response.")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	return id, err == nil && id > 0
}

func (h *Handlers) listIslands(w http.ResponseWriter, r *http.Request) {
	islands, err := h.Q.ListIslands(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list islands failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to load islands.")
		return
	}
	writeCacheable(w, r, envelope{Success: true, Data: islands})
}

func (h *Handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userID")
	if !ok {
		writeFailure(w, http.StatusBadRequest, "User id must be a positive number.")
		return
	}
	p, _ := principalFrom(r.Context())
	if p.UserID != userID && p.Role != domain.RoleAdmin {
		writeFailure(w, http.StatusForbidden, "You can only view your own vendor profile.")
		return
	}
	profile, err := h.Q.GetProfile(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("get profile failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to load vendor profile.")
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: profile})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := pathID(r, "serviceID")
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Hotel id must be a positive number.")
		return
	}
	p, _ := principalFrom(r.Context())
	hotel, err := h.Q.GetOwnedHotel(r.Context(), p, serviceID)
	switch {
	case errors.Is(err, domain.ErrForbidden):
		writeFailure(w, http.StatusForbidden, msgHotelVendorsOnly)
		return
	case err != nil:
		log.Error().Err(err).Int64("service_id", serviceID).Msg("get hotel failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to load hotel.")
		return
	}
	// hotel may be nil: missing and foreign hotels look the same
	writeCacheable(w, r, envelope{Success: true, Data: hotel})
}

func (h *Handlers) updateHotel(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := pathID(r, "serviceID")
	if !ok {
		writeFailure(w, http.StatusBadRequest, "Hotel id must be a positive number.")
		return
	}
	var body domain.HotelUpdate
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeFailure(w, http.StatusBadRequest, "Request body must be a JSON hotel update.")
		return
	}
	p, _ := principalFrom(r.Context())
	err := h.U.UpdateHotel(r.Context(), p, serviceID, body)

	var verr *app.ValidationError
	switch {
	case err == nil:
		log.Info().Int64("service_id", serviceID).Int64("user_id", p.UserID).Msg("hotel updated")
		writeJSON(w, http.StatusOK, envelope{Success: true, Message: "Hotel updated successfully."})
	case errors.As(err, &verr):
		writeFailure(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, domain.ErrForbidden):
		writeFailure(w, http.StatusForbidden, msgHotelVendorsOnly)
	case errors.Is(err, domain.ErrNotFound):
		writeFailure(w, http.StatusNotFound, msgNotFoundOrForbidden)
	default:
		log.Error().Err(err).Int64("service_id", serviceID).Msg("update hotel failed")
		writeFailure(w, http.StatusInternalServerError, "Failed to update hotel.")
	}
}
