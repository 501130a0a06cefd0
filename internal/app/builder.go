package app

import (
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/compile"
)

// Components contains all the initialized application components. This struct
// provides controlled access to components needed by the CLI layer.
type Components struct {
	App    *App
	Logger ports.Logger
	Engine *compile.Context
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(a *App, logger ports.Logger, engine *compile.Context) *Components {
	return &Components{
		App:    a,
		Logger: logger,
		Engine: engine,
	}
}
