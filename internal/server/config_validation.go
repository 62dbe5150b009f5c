// config_validation.go - startup validation of the FD_* environment.
//
// Validates configuration before anything is constructed to fail fast
// with clear per-field messages rather than runtime failures.
package server

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// ConfigValidationError represents a configuration validation error.
type ConfigValidationError struct {
	Field   string
	Message string
}

func (e ConfigValidationError) Error() string {
	return fmt.Sprintf("config validation failed for %s: %s", e.Field, e.Message)
}

// ConfigValidator validates application configuration.
type ConfigValidator struct {
	errors []ConfigValidationError
}

// NewConfigValidator creates a new configuration validator.
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{
		errors: make([]ConfigValidationError, 0),
	}
}

// AddError adds a validation error.
func (v *ConfigValidator) AddError(field, message string) {
	v.errors = append(v.errors, ConfigValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ConfigValidator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *ConfigValidator) Errors() []ConfigValidationError {
	return v.errors
}

// ErrorString returns a formatted string of all errors.
func (v *ConfigValidator) ErrorString() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Configuration validation failed with %d error(s):\n", len(v.errors)))
	for i, err := range v.errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidateRequired validates that a required environment variable is set.
func (v *ConfigValidator) ValidateRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		v.AddError(key, "required environment variable not set")
	}
	return value
}

// ValidatePort validates that a value is a valid listen address port.
func (v *ConfigValidator) ValidatePort(key, value string) {
	if value == "" {
		return
	}

	// Handle ":port" and "host:port" forms.
	portStr := value
	if i := strings.LastIndex(value, ":"); i >= 0 {
		portStr = value[i+1:]
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		v.AddError(key, "port must be a number")
		return
	}

	if port < 1 || port > 65535 {
		v.AddError(key, "port must be between 1 and 65535")
	}
}

// ValidateEnum validates that a value is one of allowed options.
func (v *ConfigValidator) ValidateEnum(key, value string, allowed []string) {
	if value == "" {
		return
	}

	for _, opt := range allowed {
		if value == opt {
			return
		}
	}

	v.AddError(key, fmt.Sprintf("must be one of: %s (got: %s)", strings.Join(allowed, ", "), value))
}

// ValidateAllConfiguration validates the whole FD_* environment for the
// selected storage backend. Returns an error listing every problem found.
func ValidateAllConfiguration() error {
	v := NewConfigValidator()

	if addr := os.Getenv("FD_ADDR"); addr != "" {
		v.ValidatePort("FD_ADDR", addr)
	}

	storeKind := os.Getenv("FD_STORE")
	v.ValidateEnum("FD_STORE", storeKind, []string{"dir", "memory", "s3", "postgres"})

	switch storeKind {
	case "s3":
		v.ValidateRequired("FD_S3_ENDPOINT")
		v.ValidateRequired("FD_S3_ACCESS_KEY")
		v.ValidateRequired("FD_S3_SECRET_KEY")
		v.ValidateRequired("FD_BUCKET")

		if endpoint := os.Getenv("FD_S3_ENDPOINT"); strings.Contains(endpoint, "://") {
			if u, err := url.Parse(endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
				v.AddError("FD_S3_ENDPOINT", "must be host:port or an http(s) URL")
			}
		}
	case "postgres":
		dbURL := v.ValidateRequired("DATABASE_URL")
		if dbURL != "" && !strings.HasPrefix(dbURL, "postgres://") && !strings.HasPrefix(dbURL, "postgresql://") {
			v.AddError("DATABASE_URL", "must be a valid PostgreSQL connection string")
		}
	}

	v.ValidateEnum("FD_LOG_FORMAT", os.Getenv("FD_LOG_FORMAT"), []string{"json", "text"})
	v.ValidateEnum("FD_LOG_LEVEL", os.Getenv("FD_LOG_LEVEL"), []string{"debug", "info", "warn", "error"})

	if v.HasErrors() {
		return fmt.Errorf("%s", v.ErrorString())
	}
	return nil
}
