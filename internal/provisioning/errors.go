package provisioning

import "errors"

var (
	// ErrConfigLoad is returned when the deployment document cannot be opened,
	// parsed or validated. No remote call is made in that case.
	ErrConfigLoad = errors.New("config load failed")

	// ErrPrerequisite is returned when a step every later stage depends on fails.
	ErrPrerequisite = errors.New("prerequisite step failed")
)
