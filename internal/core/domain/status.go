package domain

import "strings"

// ModuleStatus is the lifecycle state of one module during a sync or build run.
type ModuleStatus string

const (
	// StatusPending means the module waits for its dependencies.
	StatusPending ModuleStatus = "pending"
	// StatusRunning means the module is being synchronized or built.
	StatusRunning ModuleStatus = "running"
	// StatusCompleted means the work finished successfully.
	StatusCompleted ModuleStatus = "completed"
	// StatusFailed means the work failed.
	StatusFailed ModuleStatus = "failed"
	// StatusCached means the module was unchanged since its last successful build.
	StatusCached ModuleStatus = "cached"
	// StatusSkipped means the module was never started because the run stopped early.
	StatusSkipped ModuleStatus = "skipped"
)

// IsTerminal reports whether no further transition is expected.
func (s ModuleStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCached, StatusSkipped:
		return true
	default:
		return false
	}
}

// ParseModuleStatus converts s to a ModuleStatus, defaulting to pending.
func ParseModuleStatus(s string) ModuleStatus {
	switch status := ModuleStatus(strings.ToLower(s)); status {
	case StatusRunning, StatusCompleted, StatusFailed, StatusCached, StatusSkipped:
		return status
	default:
		return StatusPending
	}
}

// LogLevel is the severity of a log line or of a message attached to a telemetry vertex.
type LogLevel int

const (
	// LogLevelDebug is debug verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo is informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn is warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError is error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the upper-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLogLevel converts a case-insensitive level name, defaulting to LogLevelInfo.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}
