package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// AdminConfig : учетные данные администратора для первичного запуска
type AdminConfig struct {
	Login    string `yaml:"login"`
	Password string `yaml:"password"`
}

type TTL struct {
	SettingsCache int `yaml:"settingsCache"`
}
