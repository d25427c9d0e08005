// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/fitlog/internal/platform/apperr"
	requestutil "github.com/taibuivan/fitlog/internal/platform/request"
	"github.com/taibuivan/fitlog/internal/platform/respond"
	"github.com/taibuivan/fitlog/pkg/date"
	"github.com/taibuivan/fitlog/pkg/query"
)

// Handler implements the session HTTP endpoints.
type Handler struct {
	sessionService *Service
}

// NewHandler constructs a new session [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{sessionService: service}
}

// Routes returns a [chi.Router] configured with the session endpoints.
//
// # Endpoints
//   - GET    /       : List (optional ?from=&to=&activity=).
//   - POST   /       : Create.
//   - GET    /stats  : Aggregated totals.
//   - GET    /{id}   : Read one.
//   - PUT    /{id}   : Partial update (PATCH is accepted too).
//   - DELETE /{id}   : Delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/stats", handler.stats)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

/*
GET /sessions.

Response:
  - 200: []Session with count
  - 400: VALIDATION_ERROR (bad date bounds)
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := parseFilter(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	sessions, err := handler.sessionService.List(request.Context(), userID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, sessions)
}

/*
POST /sessions.

Request:
  - body: CreateInput

Response:
  - 201: Session
  - 400: VALIDATION_ERROR
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.sessionService.Create(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, session)
}

/*
GET /sessions/stats.

Response:
  - 200: Summary
*/
func (handler *Handler) stats(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.sessionService.Stats(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

/*
GET /sessions/{id}.

Response:
  - 200: Session
  - 404: NOT_FOUND
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.sessionService.Get(request.Context(), userID, requestutil.Param(request, FieldID))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
PUT /sessions/{id}.

Request:
  - body: UpdateInput (partial)

Response:
  - 200: Session
  - 400: VALIDATION_ERROR (record unchanged)
  - 404: NOT_FOUND
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.sessionService.Update(request.Context(), userID, requestutil.Param(request, FieldID), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
DELETE /sessions/{id}.

Response:
  - 200: message
  - 404: NOT_FOUND
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.sessionService.Delete(request.Context(), userID, requestutil.Param(request, FieldID)); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Session deleted")
}

// parseFilter reads the optional list filters from the query string.
func parseFilter(request *http.Request) (Filter, error) {
	values := request.URL.Query()
	var details []apperr.FieldError

	from, err := query.Time(values, FieldFrom)
	if err != nil {
		details = append(details, apperr.FieldError{Field: FieldFrom, Message: err.Error()})
	}
	to, err := query.Time(values, FieldTo)
	if err != nil {
		details = append(details, apperr.FieldError{Field: FieldTo, Message: err.Error()})
	}
	if len(details) > 0 {
		return Filter{}, apperr.ValidationError("Validation failed", details...)
	}

	// A calendar-date upper bound includes the whole day.
	if to != nil && len(query.String(values, FieldTo)) == len(date.LayoutDay) {
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		to = &endOfDay
	}

	return Filter{From: from, To: to, Activity: query.String(values, FieldActivity)}, nil
}
