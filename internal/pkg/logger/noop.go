package logger

// NoopLogger discards everything. Used in tests and as a default before the
// real logger is wired.
type NoopLogger struct{}

func NewNoop() *NoopLogger { return &NoopLogger{} }

func (NoopLogger) Debug(module, message string, details map[string]interface{}) {}
func (NoopLogger) Info(module, message string, details map[string]interface{})  {}
func (NoopLogger) Warn(module, message string, details map[string]interface{})  {}
func (NoopLogger) Error(module, message string, details map[string]interface{}) {}
func (NoopLogger) Sync() error                                                  { return nil }
func (NoopLogger) GetLogs(level string, limit, offset int) ([]LogEntry, error)  { return nil, nil }
func (NoopLogger) GetLogById(id string) (*LogEntry, error)                      { return nil, nil }
