package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"hotel_hub/internal/api/middleware"
	"hotel_hub/internal/app/service"
	"hotel_hub/internal/common"
	"hotel_hub/internal/common/security"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService   *service.AuthService
	auth          *middleware.AuthMiddleware
	validate      *validator.Validate
	cookieMaxAge  time.Duration
	secureCookies bool
}

func NewAuthHandler(authService *service.AuthService, auth *middleware.AuthMiddleware, cookieMaxAge time.Duration, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		auth:          auth,
		validate:      validator.New(),
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
	r.Get("/{email}", h.getUser)

	r.Post("/auth/register", h.register)
	r.With(httprate.LimitByIP(10, time.Minute)).Post("/auth/login", h.login)
	r.Put("/auth/update", h.update)
	r.Delete("/auth/delete", h.delete)

	r.Group(func(protected chi.Router) {
		protected.Use(h.auth.Authenticator)
		protected.Post("/auth/logout", h.logout)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "User with email "+user.Email+" has been created.", user)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	_, token, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}

	// The token travels only in the cookie, never in the body.
	http.SetCookie(w, &http.Cookie{
		Name:     security.TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	common.RespondWithMessage(w, http.StatusOK, "Login successful.")
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
	})
	common.RespondWithMessage(w, http.StatusOK, "Logout successful.")
}

func (h *AuthHandler) update(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	user, err := h.authService.Update(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "User with the previous email of "+req.TargetEmail+" has been updated.", user)
}

func (h *AuthHandler) delete(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	if err := h.authService.Delete(r.Context(), req); err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "User with the email of "+req.Email+" has been deleted.")
}

func (h *AuthHandler) getUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	user, err := h.authService.GetByEmail(r.Context(), email)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.List(r.Context())
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
