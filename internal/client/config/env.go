package config

const (
	EnvBackendURL = "TASKADMIN_BACKEND_URL"
	EnvDatabase   = "TASKADMIN_DB"
)

// parseEnv overlays cfg with non-empty environment values.
func parseEnv(cfg *Config, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvBackendURL); ok && v != "" {
		cfg.BackendURL = v
	}
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		cfg.DatabasePath = v
	}
}
