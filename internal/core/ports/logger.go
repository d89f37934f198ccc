package ports

// Logger defines the interface for logging.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	// Debug logs diagnostic detail that is hidden at the default level.
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	// Error logs an error together with its cause chain.
	Error(err error)
}
