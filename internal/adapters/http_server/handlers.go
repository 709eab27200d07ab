// internal/adapters/http_server/handlers.go
package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"hotels_api/internal/app"
	"hotels_api/internal/domain"
)

const (
	msgListed            = "Hotel has been listed successfully."
	msgCreated           = "Hotel has been created successfully."
	msgFetched           = "Hotel has been fetched successfully."
	msgUpdated           = "Hotel has been updated successfully."
	msgBadBody           = "Request body is not valid JSON."
	internalErrorMessage = "Internal server error."
)

type Handlers struct {
	Q *app.QueryService
	C *app.CommandService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/hotels", func(r chi.Router) {
		r.Get("/", h.index)
		r.Post("/", h.store)
		r.Get("/{id}", h.show)
		r.Put("/{id}", h.update)
		r.Patch("/{id}", h.update)
		r.Delete("/{id}", h.destroy)
	})
}

// parseID returns the raw {id} segment and its numeric value; ok is false
// for anything that cannot name a row.
func parseID(r *http.Request) (raw string, id int64, ok bool) {
	raw = chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return raw, 0, false
	}
	return raw, id, true
}

func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, rawID string, err error) {
	var verr *app.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeNotFound(w, rawID)
	default:
		log.Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("request_id", chimw.GetReqID(r.Context())).
			Msg("hotel request failed")
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}

func (h *Handlers) index(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.ListHotels(r.Context())
	if err != nil {
		h.fail(w, r, "", err)
		return
	}
	if hotels == nil {
		hotels = []domain.Hotel{}
	}
	writeCacheable(w, r, msgListed, hotels)
}

func (h *Handlers) store(w http.ResponseWriter, r *http.Request) {
	in, err := decodeHotelInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	hotel, err := h.C.CreateHotel(r.Context(), in)
	if err != nil {
		h.fail(w, r, "", err)
		return
	}
	writeEnvelope(w, http.StatusCreated, msgCreated, hotel)
}

func (h *Handlers) show(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := parseID(r)
	if !ok {
		writeNotFound(w, raw)
		return
	}
	hotel, err := h.Q.GetHotel(r.Context(), id)
	if err != nil {
		h.fail(w, r, raw, err)
		return
	}
	writeCacheable(w, r, msgFetched, hotel)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	in, err := decodeHotelInput(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}
	if err := app.ValidateHotel(in); err != nil {
		h.fail(w, r, "", err)
		return
	}
	raw, id, ok := parseID(r)
	if !ok {
		writeNotFound(w, raw)
		return
	}
	hotel, err := h.C.UpdateHotel(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, raw, err)
		return
	}
	writeEnvelope(w, http.StatusOK, msgUpdated, hotel)
}

func (h *Handlers) destroy(w http.ResponseWriter, r *http.Request) {
	raw, id, ok := parseID(r)
	if !ok {
		writeNotFound(w, raw)
		return
	}
	hotel, err := h.C.DeleteHotel(r.Context(), id)
	if err != nil {
		h.fail(w, r, raw, err)
		return
	}
	writeEnvelope(w, http.StatusOK, fmt.Sprintf("Hotel with id %s has been deleted successfully.", raw), hotel)
}
