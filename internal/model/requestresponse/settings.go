package requestresponse

import "admin-chat-server/internal/model"

// SettingsResponse : все настройки виджета одним ответом
type SettingsResponse struct {
	Success  bool                  `json:"success" example:"true"`
	Settings *model.WidgetSettings `json:"settings"`
}

// UpdateSettingsResponse : ответ на обновление настроек
type UpdateSettingsResponse struct {
	Success bool `json:"success" example:"true"`
}
