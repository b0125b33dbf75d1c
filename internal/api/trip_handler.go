package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/meandevstar/atlas-backend/internal/api/shared"
	"github.com/meandevstar/atlas-backend/internal/domain"
	"github.com/meandevstar/atlas-backend/internal/service"
)

// maxUploadBytes caps POI photo uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// TripHandler adapts the trip endpoints to the TripService and
// PoiService.
type TripHandler struct {
	tripService *service.TripService
	poiService  *service.PoiService
	logger      *slog.Logger
}

// NewTripHandler creates a TripHandler.
func NewTripHandler(tripService *service.TripService, poiService *service.PoiService, log *slog.Logger) *TripHandler {
	if tripService == nil {
		panic("tripService cannot be nil")
	}
	if poiService == nil {
		panic("poiService cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TripHandler{
		tripService: tripService,
		poiService:  poiService,
		logger:      log.With(slog.String("component", "trip_handler")),
	}
}

// CreateTrip handles POST /trips.
func (h *TripHandler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		shared.RespondError(w, r, domain.Unauthorized("Please sign in"))
		return
	}

	var req CreateTripRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.tripService.CreateTrip(r.Context(), service.CreateTripInput{
		TripName:  req.TripName,
		Data:      req.Data,
		Published: req.Published,
	}, identity.ID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// GetAllTrips handles GET /trips/mine: every trip owned by the caller.
func (h *TripHandler) GetAllTrips(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		shared.RespondError(w, r, domain.Unauthorized("Please sign in"))
		return
	}

	result, err := h.tripService.GetAllTrips(r.Context(), identity.ID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// GetTrip handles GET /trips/{id}.
func (h *TripHandler) GetTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := bindTripID(r)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.tripService.GetTripByID(r.Context(), tripID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// UpdateTrip handles PUT /trips/{id}.
func (h *TripHandler) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := bindTripID(r)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	var req UpdateTripRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.tripService.UpdateTrip(r.Context(), tripID, service.UpdateTripInput{
		TripName:  req.TripName,
		Data:      req.Data,
		Published: req.Published,
	})
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// DeleteTrip handles DELETE /trips/{id}.
func (h *TripHandler) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	tripID, err := bindTripID(r)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.tripService.DeleteTrip(r.Context(), tripID)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// UploadPoiImage handles POST /trips/poi-img-upload: a multipart upload
// with the photo in the tripImage field.
func (h *TripHandler) UploadPoiImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		shared.RespondError(w, r, domain.BadRequest("Invalid request format"))
		return
	}

	file, header, err := r.FormFile("tripImage")
	if err != nil {
		shared.RespondError(w, r, domain.BadRequest("\"tripImage\" is required"))
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			h.logger.Warn("failed to close uploaded file", "error", cerr)
		}
	}()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.tripService.UploadPoiImage(r.Context(), header.Filename, content)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// RemovePoiImage handles DELETE /trips/poi-img-remove/{key}.
func (h *TripHandler) RemovePoiImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key string `json:"key" validate:"required"`
	}
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, domain.BadRequest("Invalid request!"))
		return
	}

	result, err := h.tripService.RemovePoiImage(r.Context(), req.Key)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// SearchPoi handles GET /trips/search-poi?poiName=.
func (h *TripHandler) SearchPoi(w http.ResponseWriter, r *http.Request) {
	var req SearchPoiRequest
	if err := shared.Bind(r, &req); err != nil {
		shared.RespondError(w, r, err)
		return
	}

	result, err := h.poiService.SearchByName(r.Context(), req.PoiName)
	if err != nil {
		shared.RespondError(w, r, err)
		return
	}

	shared.Respond(w, r, result)
}

// bindTripID validates and parses the {id} path parameter. It reads
// only the route, leaving the body for the endpoint's own schema.
func bindTripID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, domain.BadRequest("\"id\" is required")
	}

	tripID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.BadRequest("\"id\" must be a valid id")
	}
	return tripID, nil
}
