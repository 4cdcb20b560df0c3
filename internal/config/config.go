package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Alturino/shopping/internal/log"
)

type Application struct {
	Env                   string   `mapstructure:"env"                      json:"env"`
	Host                  string   `mapstructure:"host"                     json:"host"`
	LogPath               string   `mapstructure:"log_path"                 json:"log_path"`
	SecretKey             string   `mapstructure:"secret_key"               json:"-"`
	CorsAllowOrigins      []string `mapstructure:"cors_allow_origins"       json:"cors_allow_origins"`
	AccessTokenExpMinutes int      `mapstructure:"access_token_exp_minutes" json:"access_token_exp_minutes"`
	Port                  int      `mapstructure:"port"                     json:"port"`
}

type Database struct {
	URL            string `mapstructure:"url"             json:"-"`
	ConnectionTxt  string `mapstructure:"connection_txt"  json:"-"`
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int32  `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int32  `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("application.env", log.EnvDevelopment)
	v.SetDefault("application.host", "0.0.0.0")
	v.SetDefault("application.port", 8000)
	v.SetDefault("application.log_path", "")
	v.SetDefault("application.secret_key", "change-me-in-prod")
	v.SetDefault("application.access_token_exp_minutes", 60)
	v.SetDefault("application.cors_allow_origins", []string{"*"})

	v.SetDefault("db.url", "")
	v.SetDefault("db.connection_txt", "")
	v.SetDefault("db.name", "myapp")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5000)
	v.SetDefault("db.username", "appuser")
	v.SetDefault("db.password", "dbuser123")
	v.SetDefault("db.migration_path", "file://migrations")
	v.SetDefault("db.max_connections", 10)
	v.SetDefault("db.min_connections", 1)

	v.SetDefault("cache.host", "localhost")
	v.SetDefault("cache.port", 6379)
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.database", 0)

	v.SetDefault("otel.host", "localhost")
	v.SetDefault("otel.port", 4317)
}

func bindEnvs(v *viper.Viper) error {
	bindings := map[string]string{
		"db.url":                               "DATABASE_URL",
		"db.connection_txt":                    "DB_CONNECTION_TXT",
		"application.secret_key":               "JWT_SECRET_KEY",
		"application.access_token_exp_minutes": "ACCESS_TOKEN_EXP_MINUTES",
		"application.cors_allow_origins":       "CORS_ALLOW_ORIGINS",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed binding env=%s to key=%s with error=%w", env, key, err)
		}
	}
	return nil
}

// InitConfig reads <filename>.yaml from dir, overlays the environment and returns the
// resulting Config. A missing file leaves the defaults and the environment in place.
func InitConfig(c context.Context, dir string, filename string) (*Config, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "InitConfig").
		Str(log.KeyProcess, "init config").
		Str("filename", filename).
		Str("dir", dir).
		Logger()

	v := viper.New()
	v.SetConfigName(filename)
	v.AddConfigPath(dir)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	if err := bindEnvs(v); err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}

	logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
	logger.Info().Msg("reading config")
	err := v.ReadInConfig()
	if err != nil {
		notFound := viper.ConfigFileNotFoundError{}
		if !errors.As(err, &notFound) {
			err = fmt.Errorf("failed reading config with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return nil, err
		}
		logger.Warn().Msg("config file not found, using defaults and environment")
	} else {
		logger.Info().Msg("read config")
	}

	logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
	logger.Info().Msg("unmarshaling config")
	cfg := Config{}
	err = v.Unmarshal(&cfg)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling config with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	cfg.Application.CorsAllowOrigins = splitOrigins(cfg.Application.CorsAllowOrigins)
	logger.Info().Any(log.KeyConfig, cfg).Msg("unmarshaled config")

	return &cfg, nil
}

func splitOrigins(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, origin := range origins {
		for _, o := range strings.Split(origin, ",") {
			if o = strings.TrimSpace(o); o != "" {
				result = append(result, o)
			}
		}
	}
	if len(result) == 0 {
		return []string{"*"}
	}
	return result
}

// ConnString resolves the postgres connection string. DATABASE_URL wins over
// DB_CONNECTION_TXT, which wins over the discrete host/port/user fields.
func (d Database) ConnString() string {
	if d.URL != "" {
		return normalizeURL(d.URL)
	}
	if d.ConnectionTxt != "" {
		txt := strings.TrimSpace(d.ConnectionTxt)
		txt = strings.TrimSpace(strings.TrimPrefix(txt, "psql"))
		txt = strings.Trim(txt, `"'`)
		if txt != "" {
			return normalizeURL(txt)
		}
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.Username, d.Password),
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func normalizeURL(raw string) string {
	return strings.Replace(raw, "postgresql+psycopg://", "postgresql://", 1)
}
