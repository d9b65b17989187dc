package logging

import "go.uber.org/zap"

// New builds the process logger. Mode "dev" enables the human-readable
// development config; anything else is production JSON.
func New(mode string) (*zap.Logger, error) {
	if mode == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
