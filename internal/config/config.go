package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Auth       AuthConfig       `yaml:"auth"`
	AI         AIConfig         `yaml:"ai"`
	Admin      AdminConfig      `yaml:"admin"`
	Activities ActivitiesConfig `yaml:"activities"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"120s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer       string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"lingora"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"15m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
	BcryptCost      int           `yaml:"bcrypt_cost"       env:"AUTH_BCRYPT_COST"       env-default:"10"`

	GoogleClientID     string `yaml:"google_client_id"     env:"AUTH_GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `yaml:"google_client_secret" env:"AUTH_GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURI  string `yaml:"google_redirect_uri"  env:"AUTH_GOOGLE_REDIRECT_URI"`
}

// HasGoogleOAuth reports whether federated Google login is configured.
func (c AuthConfig) HasGoogleOAuth() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// AIConfig holds settings for the conversation and quiz generation
// providers. Providers with an empty API key are skipped; when none is
// configured the built-in mock provider serves all requests.
type AIConfig struct {
	OpenAIAPIKey   string        `yaml:"openai_api_key"  env:"AI_OPENAI_API_KEY"`
	OpenAIModel    string        `yaml:"openai_model"    env:"AI_OPENAI_MODEL"    env-default:"gpt-4o-mini"`
	OpenAIBaseURL  string        `yaml:"openai_base_url" env:"AI_OPENAI_BASE_URL"`
	GeminiAPIKey   string        `yaml:"gemini_api_key"  env:"AI_GEMINI_API_KEY"`
	GeminiModel    string        `yaml:"gemini_model"    env:"AI_GEMINI_MODEL"    env-default:"gemini-2.0-flash"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"AI_REQUEST_TIMEOUT" env-default:"45s"`
	MaxTokens      int           `yaml:"max_tokens"      env:"AI_MAX_TOKENS"      env-default:"2048"`
	Temperature    float32       `yaml:"temperature"     env:"AI_TEMPERATURE"     env-default:"0.7"`
}

// AdminConfig holds admin access settings.
type AdminConfig struct {
	// Emails is a comma-separated allow-list; matching accounts are
	// issued tokens with the admin role.
	Emails string `yaml:"emails" env:"ADMIN_EMAILS"`
	// GatePassword protects the admin dashboard behind a second
	// password prompt on top of the regular login.
	GatePassword string `yaml:"gate_password" env:"ADMIN_GATE_PASSWORD"`
}

// ActivitiesConfig holds daily activity settings.
type ActivitiesConfig struct {
	// Timezone determines the calendar day boundary for date keys.
	Timezone string `yaml:"timezone" env:"ACTIVITIES_TIMEZONE" env-default:"UTC"`
	// TimedDuration is how long a timed activity must run before it
	// counts as completed.
	TimedDuration time.Duration `yaml:"timed_duration" env:"ACTIVITIES_TIMED_DURATION" env-default:"2m"`
	// QuestionsPerQuiz is the number of questions generated per quiz.
	QuestionsPerQuiz int `yaml:"questions_per_quiz" env:"ACTIVITIES_QUESTIONS_PER_QUIZ" env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// AdminEmails returns the parsed, lower-cased admin allow-list.
func (c AdminConfig) AdminEmails() []string {
	if strings.TrimSpace(c.Emails) == "" {
		return nil
	}
	parts := strings.Split(c.Emails, ",")
	emails := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			emails = append(emails, p)
		}
	}
	return emails
}

// IsAdminEmail checks the allow-list, case-insensitively.
func (c AdminConfig) IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range c.AdminEmails() {
		if e == email {
			return true
		}
	}
	return false
}
