package app

import (
	"time"

	"github.com/northquant/site-backend/internal/platform/envutil"
)

type Config struct {
	ServiceName    string
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
}

func LoadConfig() Config {
	return Config{
		ServiceName:    envutil.Str("SERVICE_NAME", "northquant-site"),
		Port:           envutil.Str("PORT", "8080"),
		JWTSecretKey:   envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		AccessTokenTTL: time.Duration(envutil.Int("ACCESS_TOKEN_TTL", 3600)) * time.Second,
	}
}
