package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	RateLimit     RateLimitConfig
	AuthRateLimit AuthRateLimitConfig
	Pricing       PricingConfig
	Verification  VerificationConfig
	Security      SecurityConfig
	RouteGuard    RouteGuardConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUXE_APP_ENV" required:"true"`
	Port         string `envconfig:"LUXE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"LUXE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUXE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"LUXE_DB_DSN"`
	Driver string `envconfig:"LUXE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"LUXE_DB_HOST"`
	LegacyPort     int    `envconfig:"LUXE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"LUXE_DB_USER"`
	LegacyPassword string `envconfig:"LUXE_DB_PASSWORD"`
	LegacyName     string `envconfig:"LUXE_DB_NAME"`
	LegacySSLMode  string `envconfig:"LUXE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"LUXE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LUXE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LUXE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LUXE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LUXE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"LUXE_REDIS_ADDR"`
	Password     string        `envconfig:"LUXE_REDIS_PASSWORD"`
	DB           int           `envconfig:"LUXE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LUXE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LUXE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LUXE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LUXE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LUXE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUXE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LUXE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"LUXE_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"LUXE_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the Redis session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"LUXE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"LUXE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"LUXE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"LUXE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"LUXE_ARGON_KEY_LEN" default:"32"`
}

// RateLimitConfig throttles general API traffic per client and route.
type RateLimitConfig struct {
	Window time.Duration `envconfig:"LUXE_RATE_LIMIT_WINDOW" default:"1m"`
	Max    int           `envconfig:"LUXE_RATE_LIMIT_MAX" default:"60"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"LUXE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"LUXE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"LUXE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"LUXE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"LUXE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"LUXE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

// PricingConfig carries the storefront's flat-rate pricing policy.
type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"LUXE_FREE_SHIPPING_THRESHOLD" default:"1000"`
	ShippingFee           decimal.Decimal `envconfig:"LUXE_SHIPPING_FEE" default:"15"`
	TaxRate               decimal.Decimal `envconfig:"LUXE_TAX_RATE" default:"0.21"`
	PromoCodes            []string        `envconfig:"LUXE_PROMO_CODES" default:"LUXE10"`
	PromoDiscountRate     decimal.Decimal `envconfig:"LUXE_PROMO_DISCOUNT_RATE" default:"0.10"`
	GiftBagFee            decimal.Decimal `envconfig:"LUXE_GIFT_BAG_FEE" default:"10"`
}

type VerificationConfig struct {
	TokenTTL   time.Duration `envconfig:"LUXE_VERIFICATION_TOKEN_TTL" default:"24h"`
	SuccessURL string        `envconfig:"LUXE_VERIFICATION_SUCCESS_URL" default:"/verified"`
	ErrorURL   string        `envconfig:"LUXE_VERIFICATION_ERROR_URL" default:"/verify-error"`
}

// SecurityConfig holds the extra origins allow-listed by the CSP.
type SecurityConfig struct {
	ScriptOrigins  []string `envconfig:"LUXE_CSP_SCRIPT_ORIGINS" default:"https://cdn.maisonluxe.com"`
	StyleOrigins   []string `envconfig:"LUXE_CSP_STYLE_ORIGINS" default:"https://cdn.maisonluxe.com,https://fonts.googleapis.com"`
	ImageOrigins   []string `envconfig:"LUXE_CSP_IMAGE_ORIGINS" default:"https://cdn.maisonluxe.com"`
	FontOrigins    []string `envconfig:"LUXE_CSP_FONT_ORIGINS" default:"https://fonts.gstatic.com"`
	ConnectOrigins []string `envconfig:"LUXE_CSP_CONNECT_ORIGINS" default:""`
}

// RouteGuardConfig lists the path prefixes behind the session gate.
type RouteGuardConfig struct {
	ProtectedPrefixes []string `envconfig:"LUXE_PROTECTED_PREFIXES" default:"/account,/orders,/wishlist"`
	AuthPages         []string `envconfig:"LUXE_AUTH_PAGES" default:"/signin,/register"`
	SignInPath        string   `envconfig:"LUXE_SIGNIN_PATH" default:"/signin"`
	HomePath          string   `envconfig:"LUXE_HOME_PATH" default:"/"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LUXE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
