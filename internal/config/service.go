package config

type ServiceConfig struct {
	Name            string         `yaml:"name"`
	Environment     string         `yaml:"environment"`
	Version         string         `yaml:"version"`
	ClientURL       string         `yaml:"client_url"`
	StripeSecretKey string         `yaml:"stripe_secret_key"`
	EnableTestAuth  bool           `yaml:"enable_test_auth"`
	Supabase        SupabaseConfig `yaml:"supabase"`
}

type SupabaseConfig struct {
	JWTSecret      string `yaml:"jwt_secret"`
	ProjectURL     string `yaml:"project_url"`
	AnonKey        string `yaml:"anon_key"`
	ServiceRoleKey string `yaml:"service_role_key"`
}

// RateLimitConfig holds the per-user request budget for the mutating endpoints.
type RateLimitConfig struct {
	MaxRequests   int `yaml:"max_requests"`
	WindowSeconds int `yaml:"window_seconds"`
}

// RedisConfig configures the shared CSRF token store. When Addr is empty the
// service falls back to an in-process store (single-instance deployments only).
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}
