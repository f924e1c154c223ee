package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	JWTIssuer       string
	TokenTTLHours   int
	ServerPort      string
	PublicBaseURL   string
	LobbyURL        string
	MaxSongsPerGame int
	RoomGraceSec    int
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "blindtest"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-me"),
		JWTIssuer:       getEnv("JWT_ISSUER", "blindtest"),
		TokenTTLHours:   getEnvInt("TOKEN_TTL_HOURS", 24),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		LobbyURL:        getEnv("LOBBY_URL", ""),
		MaxSongsPerGame: getEnvInt("MAX_SONGS_PER_GAME", 20),
		RoomGraceSec:    getEnvInt("ROOM_GRACE_PERIOD", 60),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
