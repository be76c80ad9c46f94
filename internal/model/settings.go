package model

// Настройки виджета. Простые записи без логики, каждая таблица хранит
// одну-несколько строк, владелец — сервис настроек.

type SocketSettings struct {
	ID   int64  `db:"id" json:"id"`
	URL  string `db:"url" json:"url"`
	WS   string `db:"ws" json:"ws"`
	Port string `db:"port" json:"port"`
}

type ConsentSettings struct {
	ID          int64  `db:"id" json:"id"`
	ConsentLink string `db:"consent_link" json:"consentLink"`
	PolicyLink  string `db:"policy_link" json:"policyLink"`
}

type ColorSettings struct {
	ID           int64  `db:"id" json:"id"`
	Container    string `db:"container" json:"conteiner"`
	Top          string `db:"top" json:"top"`
	Messages     string `db:"messages" json:"messages"`
	FromID       string `db:"from_id" json:"fromId"`
	Text         string `db:"text" json:"text"`
	Notification string `db:"notification" json:"notification"`
	ToID         string `db:"to_id" json:"toId"`
}

type QuestionSettings struct {
	ID       int64  `db:"id" json:"id"`
	Question string `db:"question" json:"question"`
	OffOn    bool   `db:"off_on" json:"offOn"`
}

type ContactSettings struct {
	ID            int64  `db:"id" json:"id"`
	SocialNetwork string `db:"social_network" json:"socialNetwork"`
	Link          string `db:"link" json:"link"`
	OffOn         bool   `db:"off_on" json:"offOn"`
}

// WidgetSettings : агрегат всех настроек, в таком виде настройки
// кэшируются и отдаются виджету
type WidgetSettings struct {
	Socket    *SocketSettings     `json:"socket"`
	Consent   *ConsentSettings    `json:"consent"`
	Colors    *ColorSettings      `json:"colors"`
	Questions []*QuestionSettings `json:"questions"`
	Contacts  []*ContactSettings  `json:"contacts"`
}
