package model

// Scope carries the authenticated caller's identity through the use-case layer.
// Authentication itself happens upstream; handlers only translate it into a Scope.
type Scope struct {
	UserID string
}

// Environment is the deployment environment name.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
