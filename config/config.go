package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do serviço de catálogo.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis). RedisAddr vazio usa o cache em memória.
	RedisAddr    string
	CacheTTL     time.Duration
	CacheTimeout time.Duration

	// Segurança (JWT). JWTSecretKey vazio deixa as rotas de escrita abertas.
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// HTTP
	AllowedOrigins []string
	PriceLocale    string

	// Tracing. JaegerEndpoint vazio desativa o exportador.
	JaegerEndpoint string
	ServiceName    string
}

// AuthEnabled indica se as rotas de escrita exigem token.
func (c *Config) AuthEnabled() bool { return c.JWTSecretKey != "" }

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// O .env (se existir) já deve ter sido carregado pelo godotenv no main.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	cfg := &Config{
		// 1. Geral
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		// 2. Banco de Dados
		DatabaseURL: v.GetString("DATABASE_URL"),
		DBTimeout:   time.Duration(v.GetInt("DB_TIMEOUT_SEC")) * time.Second,

		// 3. Cache
		RedisAddr:    v.GetString("REDIS_ADDR"),
		CacheTTL:     time.Duration(v.GetInt("CACHE_TTL_MIN")) * time.Minute,
		CacheTimeout: time.Duration(v.GetInt("CACHE_TIMEOUT_SEC")) * time.Second,

		// 4. Segurança
		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(v.GetInt("JWT_EXPIRY_MIN")) * time.Minute,

		// 5. Rate Limiting
		RateLimitMaxRequests: v.GetInt("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitPeriod:      time.Duration(v.GetInt("RATE_LIMIT_PERIOD_MIN")) * time.Minute,

		// 6. HTTP
		AllowedOrigins: ParseAllowedOrigins(v.GetString("CORS_ALLOWED_ORIGINS")),
		PriceLocale:    v.GetString("PRICE_LOCALE"),

		// 7. Tracing
		JaegerEndpoint: v.GetString("JAEGER_ENDPOINT"),
		ServiceName:    v.GetString("SERVICE_NAME"),
	}

	// DATABASE_URL é obrigatório: sem ele o serviço não inicia.
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("config: environment variable DATABASE_URL must be set")
	}
	if cfg.RateLimitMaxRequests <= 0 {
		return nil, fmt.Errorf("config: RATE_LIMIT_MAX_REQUESTS must be positive, got %d", cfg.RateLimitMaxRequests)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_TIMEOUT_SEC", 5)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL_MIN", 5)
	v.SetDefault("CACHE_TIMEOUT_SEC", 2)
	v.SetDefault("JWT_SECRET_KEY", "")
	v.SetDefault("JWT_EXPIRY_MIN", 60)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD_MIN", 1)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("PRICE_LOCALE", "en-US")
	v.SetDefault("JAEGER_ENDPOINT", "")
	v.SetDefault("SERVICE_NAME", "gocatalog")
}

// ParseAllowedOrigins separa a lista de origens CORS por vírgula.
func ParseAllowedOrigins(originsStr string) []string {
	if strings.TrimSpace(originsStr) == "" {
		return []string{"*"}
	}
	origins := strings.Split(originsStr, ",")
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if o := strings.TrimSpace(origin); o != "" {
			out = append(out, o)
		}
	}
	return out
}
