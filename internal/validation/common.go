package validation

import (
	"regexp"
	"strings"

	"workbench/internal/errors"
)

var (
	// containerIDRegex validates container IDs and names
	containerIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

	// envVarKeyRegex validates environment variable keys
	envVarKeyRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	// safeStringRegex matches strings that are safe for shell use without escaping
	safeStringRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-./=]+$`)
)

// ContainerID validates a container ID or name to prevent injection
func ContainerID(id string) error {
	if id == "" {
		return errors.ValidationFailed("container_id", id, "cannot be empty")
	}

	if len(id) > 255 {
		return errors.ValidationFailed("container_id", id, "too long (max 255 characters)")
	}

	if !containerIDRegex.MatchString(id) {
		return errors.ContainerInvalidID(id)
	}

	return nil
}

// EnvironmentVariableKey validates an environment variable name
func EnvironmentVariableKey(key string) error {
	if key == "" {
		return errors.ValidationFailed("environment_variable", key, "key cannot be empty")
	}

	if !envVarKeyRegex.MatchString(key) {
		return errors.ValidationFailed("environment_variable_key", key, "must contain only letters, numbers, and underscores")
	}

	return nil
}

// NonEmptyString validates that a string is not empty or only whitespace
func NonEmptyString(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.ValidationFailed("string", s, "cannot be empty or only whitespace")
	}
	return nil
}

// ShellEscape escapes a string for safe use in shell commands
func ShellEscape(s string) string {
	// If the string is simple (alphanumeric + safe chars), return as-is
	if safeStringRegex.MatchString(s) {
		return s
	}

	// Otherwise, wrap in single quotes and escape any single quotes
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
