package model

// Scope carries the caller identity through the request pipeline.
type Scope struct {
	UserID   string
	Username string
}

// Environment names.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)
