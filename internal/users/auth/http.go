// Copyright (c) 2026 Fitlog. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/fitlog/internal/platform/request"
	"github.com/taibuivan/fitlog/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements the public authentication endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account and returns a bearer token.
//   - POST /login    : Authenticates and returns a bearer token.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

// # Request Payloads

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// credentialsResponse is the body returned by both register and login.
type credentialsResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func newCredentialsResponse(credentials *Credentials) credentialsResponse {
	return credentialsResponse{
		ID:        credentials.User.ID,
		Name:      credentials.User.Name,
		Email:     credentials.User.Email,
		Token:     credentials.Token,
		ExpiresAt: credentials.ExpiresAt,
	}
}

/*
Register handles the creation of a new user account.

POST /auth/register

Request:
  - Body: registerRequest (Name, Email, Password)

Response:
  - 201: credentialsResponse
  - 400: VALIDATION_ERROR or DUPLICATE_IDENTITY
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credentials, err := handler.authService.Register(request.Context(), RegisterInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, newCredentialsResponse(credentials))
}

/*
Login authenticates a user.

POST /auth/login

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: credentialsResponse
  - 400: VALIDATION_ERROR (missing fields)
  - 401: INVALID_CREDENTIALS
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credentials, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, newCredentialsResponse(credentials))
}
