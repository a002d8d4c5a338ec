package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"hotel_hub/internal/api/middleware"
	"hotel_hub/internal/app/service"
	"hotel_hub/internal/common"
	"hotel_hub/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ServiceHandler struct {
	catalogService *service.CatalogService
	auth           *middleware.AuthMiddleware
	validate       *validator.Validate
}

func NewServiceHandler(catalogService *service.CatalogService, auth *middleware.AuthMiddleware) *ServiceHandler {
	return &ServiceHandler{catalogService: catalogService, auth: auth, validate: validator.New()}
}

func (h *ServiceHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listServices)
	r.Get("/{serviceID}", h.getService)

	r.Group(func(admin chi.Router) {
		admin.Use(h.auth.Authenticator)
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		admin.Post("/create", h.createService)
		admin.Put("/update", h.updateService)
		admin.Delete("/delete", h.deleteService)
	})
}

func (h *ServiceHandler) createService(w http.ResponseWriter, r *http.Request) {
	var req service.CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	svc, err := h.catalogService.Create(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Service "+svc.Name+" has been created.", svc)
}

func (h *ServiceHandler) updateService(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	svc, err := h.catalogService.Update(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Service "+svc.Name+" has been updated.", svc)
}

func (h *ServiceHandler) deleteService(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	if err := h.catalogService.Delete(r.Context(), req); err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Service has been deleted.")
}

func (h *ServiceHandler) getService(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "serviceID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid service id")
		return
	}

	svc, err := h.catalogService.GetByID(r.Context(), id)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, svc)
}

func (h *ServiceHandler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogService.List(r.Context())
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, services)
}
