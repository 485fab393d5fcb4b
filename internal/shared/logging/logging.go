package logging

import (
	"go-pos/internal/config"

	"go.uber.org/zap"
)

// New builds the process logger and installs it as zap's global.
func New(app config.AppConfig) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if app.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}
