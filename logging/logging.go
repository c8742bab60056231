package logging

import "go.uber.org/zap"

// New returns the global sugared logger tagged with the component name
func New(component string) *zap.SugaredLogger {
	return zap.S().With("component", component)
}
