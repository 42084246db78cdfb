package errors

import "fmt"

// Configuration Errors
func ConfigParseError(cause error) *WorkbenchError {
	return Wrap(ErrConfigParse, "Failed to parse configuration", cause)
}

// Container Errors
func ContainerInvalidID(id string) *WorkbenchError {
	return NewWithDetails(ErrContainerInvalidID, "Invalid container ID", fmt.Sprintf("ID: %s", id))
}

// Git Errors
func GitRepoNotFound(path string) *WorkbenchError {
	return NewWithDetails(ErrGitRepoNotFound, "Git repository not found", fmt.Sprintf("Path: %s", path))
}

func GitCloneFailed(url string, cause error) *WorkbenchError {
	return WrapWithDetails(ErrGitCloneFailed, "Failed to clone repository",
		fmt.Sprintf("URL: %s", url), cause)
}

// Descriptor Errors
func DescriptorNotFound(name string) *WorkbenchError {
	return NewWithDetails(ErrDescriptorNotFound, "Command descriptor not found", fmt.Sprintf("Name: %s", name))
}

func DescriptorInvalid(name, reason string) *WorkbenchError {
	return NewWithDetails(ErrDescriptorInvalid, "Invalid command descriptor",
		fmt.Sprintf("Name: %s, Reason: %s", name, reason))
}

// Validation Errors
func ValidationFailed(field, value, reason string) *WorkbenchError {
	return NewWithDetails(ErrValidationFailed, "Validation failed",
		fmt.Sprintf("Field: %s, Value: %s, Reason: %s", field, value, reason))
}

// Internal Errors
func InternalError(details string, cause error) *WorkbenchError {
	if cause != nil {
		return WrapWithDetails(ErrInternal, "Internal error", details, cause)
	}
	return NewWithDetails(ErrInternal, "Internal error", details)
}
