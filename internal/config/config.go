package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	LogLevel         string
	ServerRunAddress string
	DatabaseURI      string
	JWTSecret        string

	// Redis backs the passkey challenge store and the leaderboard cache.
	// An empty RedisAddr disables both and falls back to in-process state.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// WebAuthn relying-party identity.
	RPName   string
	RPID     string
	RPOrigin string
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values")
	}

	LogLevel = os.Getenv("LOG_LEVEL")
	if LogLevel == "" {
		LogLevel = "info"
	}

	ServerRunAddress = os.Getenv("SERVER_RUN_ADDRESS")
	if ServerRunAddress == "" {
		ServerRunAddress = "0.0.0.0:8080"
	}

	DatabaseURI = os.Getenv("DATABASE_URI")
	if DatabaseURI == "" {
		DatabaseURI = "host=db user=postgres password=password dbname=beer_machine sslmode=disable"
	}

	JWTSecret = os.Getenv("JWT_SECRET")
	if JWTSecret == "" {
		JWTSecret = "supersecretkey"
	}

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")
	RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	RPName = os.Getenv("RP_NAME")
	if RPName == "" {
		RPName = "Beer Machine"
	}

	RPID = os.Getenv("RP_ID")
	if RPID == "" {
		RPID = "localhost"
	}

	RPOrigin = os.Getenv("RP_ORIGIN")
	if RPOrigin == "" {
		RPOrigin = "http://localhost:5173"
	}
}
