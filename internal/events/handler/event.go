package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"

	"evently/internal/events/service"
	"evently/pkg/assets"
	apperrors "evently/pkg/errors"
	httputil "evently/pkg/http"
	"evently/pkg/logger"
	"evently/pkg/model"
)

// multipartMemoryLimit is the in-memory budget for parsing the creation
// form; larger file parts spill to disk. The middleware's MaxRequestSize
// caps the total body.
const multipartMemoryLimit = 8 << 20

type EventHandler struct {
	service  service.EventService
	uploader assets.Uploader
	log      *logger.Logger
}

func NewEventHandler(service service.EventService, uploader assets.Uploader, log *logger.Logger) *EventHandler {
	return &EventHandler{
		service:  service,
		uploader: uploader,
		log:      log,
	}
}

// Create accepts the multipart creation form. When an image file is
// attached its bytes go to the asset host first and the returned URL is
// persisted in its place.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		h.writeError(w, "Create", apperrors.InvalidInput("Invalid multipart form data"))
		return
	}

	input := &model.EventInput{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Overview:    r.FormValue("overview"),
		Venue:       r.FormValue("venue"),
		Location:    r.FormValue("location"),
		Date:        r.FormValue("date"),
		Time:        r.FormValue("time"),
		Mode:        r.FormValue("mode"),
		Audience:    r.FormValue("audience"),
		Organizer:   r.FormValue("organizer"),
		Agenda:      formList(r, "agenda"),
		Tags:        formList(r, "tags"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		if h.uploader == nil {
			h.writeError(w, "Create", apperrors.Internal("Image uploads are not configured", nil))
			return
		}
		url, uploadErr := h.uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if uploadErr != nil {
			h.log.Error("Image upload failed", "filename", header.Filename, "error", uploadErr)
			h.writeError(w, "Create", apperrors.Internal("Failed to upload event image", uploadErr))
			return
		}
		input.ImageURL = url
	case errors.Is(err, http.ErrMissingFile):
		// The image is optional; an image URL may still arrive as a plain
		// form value.
		input.ImageURL = r.FormValue("image")
	default:
		h.writeError(w, "Create", apperrors.InvalidInput("Malformed image field"))
		return
	}

	event, err := h.service.Create(r.Context(), input)
	if err != nil {
		h.writeError(w, "Create", err)
		return
	}

	if err := httputil.WriteData(w, http.StatusCreated, "Event created successfully", "event", event); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

// GetAll lists events newest first.
func (h *EventHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	events, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, "Events fetched successfully", "events", events, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "error", err)
	}
}

func (h *EventHandler) GetBySlug(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.service.GetBySlug(r.Context(), ps.ByName("slug"))
	if err != nil {
		h.writeError(w, "GetBySlug", err)
		return
	}

	if err := httputil.WriteData(w, http.StatusOK, "Event fetched successfully", "event", event); err != nil {
		h.log.Error("failed to write success response", "handler", "GetBySlug", "error", err)
	}
}

func (h *EventHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	event, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteData(w, http.StatusOK, "Event fetched successfully", "event", event); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.EventUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		h.writeError(w, "Update", apperrors.InvalidInput("Invalid request body"))
		return
	}

	event, err := h.service.Update(r.Context(), ps.ByName("id"), &updates)
	if err != nil {
		h.writeError(w, "Update", err)
		return
	}

	if err := httputil.WriteData(w, http.StatusOK, "Event updated successfully", "event", event); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "error", err)
	}
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		h.writeError(w, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *EventHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/events", h.Create)
	router.GET("/api/v1/events", h.GetAll)
	router.GET("/api/v1/events/slug/:slug", h.GetBySlug)
	router.GET("/api/v1/events/id/:id", h.GetByID)
	router.PATCH("/api/v1/events/id/:id", h.Update)
	router.DELETE("/api/v1/events/id/:id", h.Delete)
}

func (h *EventHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}

// formList gathers a list field that may arrive as repeated form values or
// as one comma-separated value.
func formList(r *http.Request, key string) []string {
	values := r.MultipartForm.Value[key]
	if len(values) == 1 && strings.Contains(values[0], ",") {
		return strings.Split(values[0], ",")
	}
	return values
}
