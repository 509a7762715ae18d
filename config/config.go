package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	Port          string
	UsersFile     string
	OwnerPassword string
	BaseUrl       string
}

// New sets up all config related services
func New() *Config {

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("LOG_ENV"))
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	cfg := &Config{
		Port:          os.Getenv("PORT"),
		UsersFile:     os.Getenv("USERS_FILE"),
		OwnerPassword: os.Getenv("OWNER_PASSWORD"),
		BaseUrl:       os.Getenv("BASE_URL"),
	}
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.UsersFile == "" {
		// /tmp is writable on the cloud platforms we deploy to, but ephemeral
		cfg.UsersFile = "/tmp/users.json"
	}
	if cfg.OwnerPassword == "" {
		cfg.OwnerPassword = "changeme"
	}
	return cfg
}

func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "development":
		return zap.NewDevelopment()
	case "production":
		return zap.NewProduction()
	default:
		return zap.NewExample(), nil
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
