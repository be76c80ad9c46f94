package handler

import (
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/model/requestresponse"
	"admin-chat-server/internal/ports"
	"encoding/json"
	"log"
	"net/http"
)

type SettingsHandler struct {
	ports.SettingsServiceInterface
}

func NewSettingsHandler(settingsService ports.SettingsServiceInterface) *SettingsHandler {
	return &SettingsHandler{settingsService}
}

// GetSettings godoc
// @Summary Настройки виджета
// @Description Возвращает все настройки виджета одним ответом. Эндпоинт публичный, его читает сам виджет.
// @Tags Settings
// @Produce json
// @Success 200 {object} requestresponse.SettingsResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/settings [get]
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	settings, err := h.SettingsServiceInterface.GetAll(r.Context())
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}

	resp := requestresponse.SettingsResponse{
		Success:  true,
		Settings: settings,
	}

	w.WriteHeader(200)
	json.NewEncoder(w).Encode(resp)
}

// UpdateSocket godoc
// @Summary Обновление настроек подключения
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body model.SocketSettings true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdateSettingsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/settings/socket [put]
func (h *SettingsHandler) UpdateSocket(w http.ResponseWriter, r *http.Request) {
	var req model.SocketSettings
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	h.respondUpdate(w, h.SettingsServiceInterface.UpdateSocket(r.Context(), &req))
}

// UpdateConsent godoc
// @Summary Обновление ссылок на согласие и политику
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body model.ConsentSettings true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdateSettingsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/settings/consent [put]
func (h *SettingsHandler) UpdateConsent(w http.ResponseWriter, r *http.Request) {
	var req model.ConsentSettings
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	h.respondUpdate(w, h.SettingsServiceInterface.UpdateConsent(r.Context(), &req))
}

// UpdateColors godoc
// @Summary Обновление цветовой схемы виджета
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body model.ColorSettings true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdateSettingsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/settings/colors [put]
func (h *SettingsHandler) UpdateColors(w http.ResponseWriter, r *http.Request) {
	var req model.ColorSettings
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	h.respondUpdate(w, h.SettingsServiceInterface.UpdateColors(r.Context(), &req))
}

// UpdateQuestion godoc
// @Summary Обновление быстрого вопроса
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body model.QuestionSettings true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdateSettingsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/settings/question [put]
func (h *SettingsHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	var req model.QuestionSettings
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	h.respondUpdate(w, h.SettingsServiceInterface.UpdateQuestion(r.Context(), &req))
}

// UpdateContact godoc
// @Summary Обновление контакта соцсети
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body model.ContactSettings true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UpdateSettingsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/settings/contact [put]
func (h *SettingsHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	var req model.ContactSettings
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}
	h.respondUpdate(w, h.SettingsServiceInterface.UpdateContact(r.Context(), &req))
}

func (h *SettingsHandler) respondUpdate(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		log.Println(err)
		sendErrorResponse(w, 500, "внутренняя ошибка сервера")
		return
	}
	w.WriteHeader(200)
	json.NewEncoder(w).Encode(requestresponse.UpdateSettingsResponse{Success: true})
}
