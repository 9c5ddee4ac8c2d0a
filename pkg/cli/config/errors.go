package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound     = goerr.New("configuration file not found")
	ErrDuplicateControl   = goerr.New("duplicate control ID")
	ErrDuplicateFramework = goerr.New("duplicate framework ID")
	ErrMissingName        = goerr.New("name is required")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	FrameworkIDKey = "framework_id"
	ControlIDKey   = "control_id"
)
