package handler

import (
	"encoding/json"
	"net/http"

	"hotel_hub/internal/api/middleware"
	"hotel_hub/internal/app/service"
	"hotel_hub/internal/common"
	"hotel_hub/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RoomHandler struct {
	roomService *service.RoomService
	auth        *middleware.AuthMiddleware
	validate    *validator.Validate
}

func NewRoomHandler(roomService *service.RoomService, auth *middleware.AuthMiddleware) *RoomHandler {
	return &RoomHandler{roomService: roomService, auth: auth, validate: validator.New()}
}

func (h *RoomHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listRooms)
	r.Get("/{roomNumber}", h.getRoom)

	r.Group(func(admin chi.Router) {
		admin.Use(h.auth.Authenticator)
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		admin.Post("/create", h.createRoom)
		admin.Put("/update", h.updateRoom)
		admin.Delete("/delete", h.deleteRoom)
	})
}

func (h *RoomHandler) createRoom(w http.ResponseWriter, r *http.Request) {
	var req service.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	room, err := h.roomService.Create(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, "Room with number "+room.RoomNumber+" has been created.", room)
}

func (h *RoomHandler) updateRoom(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	room, err := h.roomService.Update(r.Context(), req)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, "Room with number "+req.TargetRoom+" has been updated.", room)
}

func (h *RoomHandler) deleteRoom(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields: "+err.Error())
		return
	}

	if err := h.roomService.Delete(r.Context(), req); err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Room with number "+req.RoomNumber+" has been deleted.")
}

func (h *RoomHandler) getRoom(w http.ResponseWriter, r *http.Request) {
	roomNumber := chi.URLParam(r, "roomNumber")

	room, err := h.roomService.GetByNumber(r.Context(), roomNumber)
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.roomService.List(r.Context())
	if err != nil {
		common.RespondFromError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rooms)
}
