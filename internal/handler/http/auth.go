package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/employeeflow/employeeflow-backend-go/internal/domain/auth"
	"github.com/employeeflow/employeeflow-backend-go/internal/domain/user"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/middleware"
	"github.com/employeeflow/employeeflow-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	IssueToken(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	UpdateLogin(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	userService user.UserService
}

func NewAuthHandler(authService auth.AuthService, userService user.UserService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		userService: userService,
	}
}

// Register implements AuthHandler. The email is taken from the verified ID
// token and a second registration of the same email is not an error.
func (a *AuthHandlerImpl) Register(w http.ResponseWriter, r *http.Request) {
	var registerReq auth.RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		slog.Error("Register decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := a.authService.Register(r.Context(), registerReq)
	if err != nil {
		slog.Error("Register service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if result.Exists {
		response.SuccessWithMessage(w, result.Message, result)
		return
	}
	slog.Info("User registered", "email", result.User.Email)
	response.Created(w, "User registered successfully", result)
}

// IssueToken implements AuthHandler.
func (a *AuthHandlerImpl) IssueToken(w http.ResponseWriter, r *http.Request) {
	var tokenReq auth.TokenRequest

	if err := json.NewDecoder(r.Body).Decode(&tokenReq); err != nil {
		slog.Error("IssueToken decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokenResponse, err := a.authService.IssueToken(r.Context(), tokenReq)
	if err != nil {
		slog.Warn("IssueToken service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse)
}

// GetStatus implements AuthHandler. It is public so the client can check
// for a fired account before asking for a token.
func (a *AuthHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := a.userService.GetStatus(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, status)
}

// UpdateLogin implements AuthHandler.
func (a *AuthHandlerImpl) UpdateLogin(w http.ResponseWriter, r *http.Request) {
	var loginReq user.LoginUpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := a.userService.UpdateLogin(r.Context(), currentActor(r), loginReq); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Last sign-in time updated", nil)
}

// currentActor is only called behind AuthRequired; outside it the zero
// actor fails every permission check.
func currentActor(r *http.Request) user.Actor {
	actor, _ := middleware.ActorFromContext(r.Context())
	return actor
}
