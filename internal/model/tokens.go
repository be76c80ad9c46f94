package model

// TokensPair содержит пару access и refresh токенов.
// Оба токена — подписанные JWT, в БД не сохраняются.
type TokensPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
