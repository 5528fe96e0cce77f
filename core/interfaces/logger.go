package interfaces

// Logger defines the interface for logging throughout the application.
// The engine, the cook service and the HTTP layer all log through it; the
// logrus implementation lives in infrastructure/logger.
//
// Example usage:
//
//	logger.Info("Recipe cooked", map[string]interface{}{
//		"format": "xml",
//		"models": 42,
//	})
//
//	logger.Error("Recipe cook failed", map[string]interface{}{
//		"recipe": "videos",
//		"error":  err.Error(),
//	})
type Logger interface {
	// Debug logs per-cook detail such as durations and skipped nodes.
	Debug(msg string, fields map[string]interface{})

	// Info logs lifecycle events.
	Info(msg string, fields map[string]interface{})

	// Warn logs recoverable problems such as dropped models.
	Warn(msg string, fields map[string]interface{})

	// Error logs failures that need attention.
	Error(msg string, fields map[string]interface{})
}
