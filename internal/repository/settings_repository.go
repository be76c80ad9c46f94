package repository

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/model"
	"admin-chat-server/internal/util"
	"context"
	"database/sql"
	"errors"
)

// SettingsRepository : настройки виджета. Пять маленьких таблиц,
// никакой логики — чистая персистенция.
type SettingsRepository struct {
	*config.Database
}

func NewSettingsRepository(database *config.Database) *SettingsRepository {
	return &SettingsRepository{database}
}

func (r *SettingsRepository) GetSocket(ctx context.Context) (*model.SocketSettings, error) {
	settings := &model.SocketSettings{}
	err := r.DB.GetContext(ctx, settings, `SELECT id, url, ws, port FROM settings_socket LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[SettingsRepo] не удалось получить настройки сокета", err)
	}
	return settings, nil
}

func (r *SettingsRepository) UpdateSocket(ctx context.Context, settings *model.SocketSettings) error {
	query := `
	INSERT INTO settings_socket (id, url, ws, port) VALUES (1, $1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET url = EXCLUDED.url, ws = EXCLUDED.ws, port = EXCLUDED.port
	`
	_, err := r.DB.ExecContext(ctx, query, settings.URL, settings.WS, settings.Port)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось обновить настройки сокета", err)
	}
	return nil
}

func (r *SettingsRepository) GetConsent(ctx context.Context) (*model.ConsentSettings, error) {
	settings := &model.ConsentSettings{}
	err := r.DB.GetContext(ctx, settings, `SELECT id, consent_link, policy_link FROM settings_consent LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[SettingsRepo] не удалось получить настройки соглашений", err)
	}
	return settings, nil
}

func (r *SettingsRepository) UpdateConsent(ctx context.Context, settings *model.ConsentSettings) error {
	query := `
	INSERT INTO settings_consent (id, consent_link, policy_link) VALUES (1, $1, $2)
	ON CONFLICT (id) DO UPDATE SET consent_link = EXCLUDED.consent_link, policy_link = EXCLUDED.policy_link
	`
	_, err := r.DB.ExecContext(ctx, query, settings.ConsentLink, settings.PolicyLink)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось обновить настройки соглашений", err)
	}
	return nil
}

func (r *SettingsRepository) GetColors(ctx context.Context) (*model.ColorSettings, error) {
	settings := &model.ColorSettings{}
	query := `SELECT id, container, top, messages, from_id, text, notification, to_id FROM settings_colors LIMIT 1`
	err := r.DB.GetContext(ctx, settings, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, util.LogError("[SettingsRepo] не удалось получить настройки цветов", err)
	}
	return settings, nil
}

func (r *SettingsRepository) UpdateColors(ctx context.Context, settings *model.ColorSettings) error {
	query := `
	INSERT INTO settings_colors (id, container, top, messages, from_id, text, notification, to_id)
	VALUES (1, $1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id) DO UPDATE SET
		container = EXCLUDED.container,
		top = EXCLUDED.top,
		messages = EXCLUDED.messages,
		from_id = EXCLUDED.from_id,
		text = EXCLUDED.text,
		notification = EXCLUDED.notification,
		to_id = EXCLUDED.to_id
	`
	_, err := r.DB.ExecContext(ctx, query,
		settings.Container,
		settings.Top,
		settings.Messages,
		settings.FromID,
		settings.Text,
		settings.Notification,
		settings.ToID,
	)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось обновить настройки цветов", err)
	}
	return nil
}

func (r *SettingsRepository) ListQuestions(ctx context.Context) ([]*model.QuestionSettings, error) {
	var questions []*model.QuestionSettings
	query := `SELECT id, question, off_on FROM settings_questions ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &questions, query)
	if err != nil {
		return nil, util.LogError("[SettingsRepo] не удалось получить список вопросов", err)
	}
	return questions, nil
}

func (r *SettingsRepository) UpdateQuestion(ctx context.Context, question *model.QuestionSettings) error {
	query := `
	INSERT INTO settings_questions (id, question, off_on) VALUES ($1, $2, $3)
	ON CONFLICT (id) DO UPDATE SET question = EXCLUDED.question, off_on = EXCLUDED.off_on
	`
	_, err := r.DB.ExecContext(ctx, query, question.ID, question.Question, question.OffOn)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось обновить вопрос", err)
	}
	return nil
}

func (r *SettingsRepository) ListContacts(ctx context.Context) ([]*model.ContactSettings, error) {
	var contacts []*model.ContactSettings
	query := `SELECT id, social_network, link, off_on FROM settings_contacts ORDER BY id ASC`
	err := r.DB.SelectContext(ctx, &contacts, query)
	if err != nil {
		return nil, util.LogError("[SettingsRepo] не удалось получить список контактов", err)
	}
	return contacts, nil
}

func (r *SettingsRepository) UpdateContact(ctx context.Context, contact *model.ContactSettings) error {
	query := `
	INSERT INTO settings_contacts (id, social_network, link, off_on) VALUES ($1, $2, $3, $4)
	ON CONFLICT (id) DO UPDATE SET social_network = EXCLUDED.social_network, link = EXCLUDED.link, off_on = EXCLUDED.off_on
	`
	_, err := r.DB.ExecContext(ctx, query, contact.ID, contact.SocialNetwork, contact.Link, contact.OffOn)
	if err != nil {
		return util.LogError("[SettingsRepo] не удалось обновить контакт", err)
	}
	return nil
}
