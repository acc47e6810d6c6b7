package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr      string
	GinMode      string
	LogLevel     string
	DBDriver     string
	DBDSN        string
	DBMaxOpen    int
	JWTSecret    string
	CORSOrigins  []string
	PageMaxLimit int
}

// LoadEnv reads .env when present, then the process environment.
func LoadEnv() Env {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	env := Env{
		AppAddr:      getenv("APP_ADDR", ":8080"),
		GinMode:      getenv("GIN_MODE", ""),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		DBDriver:     strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBDSN:        getenv("DB_DSN", "root:@tcp(127.0.0.1:3306)/shop_admin?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		DBMaxOpen:    getenvInt("DB_MAX_OPEN_CONNS", 25),
		JWTSecret:    getenv("JWT_SECRET", ""),
		PageMaxLimit: getenvInt("PAGE_MAX_LIMIT", 100),
	}
	if raw := getenv("CORS_ALLOWED_ORIGINS", ""); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}
	return env
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	n, err := strconv.Atoi(getenv(key, ""))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
