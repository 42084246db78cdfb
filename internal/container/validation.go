package container

import (
	"workbench/internal/validation"
)

// validateContainerID validates a container ID or name to prevent injection
func validateContainerID(id string) error {
	return validation.ContainerID(id)
}
