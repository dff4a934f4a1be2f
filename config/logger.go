package config

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger = zap.NewNop()

// InitLogger builds the process-wide logger. APP_ENV=production switches to
// the JSON production config.
func InitLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return err
	}
	Logger = logger
	return nil
}
