package config

type Configuration struct {
	ApplicationConfigFileYmlPath string `env:"APP_CONFIG_FILE_YML_PATH" envDefault:"application.yml"`
}

// ApplicationConfiguration Must use full names for `sigs.k8s.io/yaml`
type ApplicationConfiguration struct {
	Server      Server
	Prometheus  Prometheus
	Tracing     Tracing
	Persistence Persistence
	File        FileConfig
	Gist        GistConfig
	Git         GitConfig
	Postgres    PostgresConfig
	ConfigMap   ConfigMapConfig `json:"configMap"`
	Upload      UploadConfig
	Admin       AdminConfig
	Store       StoreConfig
}

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
)

type Server struct {
	Port        int    `env:"PORT"`
	Environment string `env:"APP_ENV"`
	LogRequests bool   `json:"logRequests" env:"LOG_REQUESTS"`
	// AllowedOrigins for CORS, empty means any
	AllowedOrigins []string `json:"allowedOrigins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

func (s Server) IsProduction() bool {
	return s.Environment == EnvironmentProduction
}

type Tracing struct {
	Enabled         bool    `env:"TRACING_ENABLED"`
	Endpoint        string  `env:"TRACING_ENDPOINT"`
	SamplerFraction float64 `json:"samplerFraction"`
}

type Prometheus struct {
	Path string `env:"PROMETHEUS_PATH"`
}

const (
	WriteModeFirst = "first"
	WriteModeAll   = "all"
)

type Persistence struct {
	// WriteMode is "first" (stop at the first backend that accepts the write) or "all"
	WriteMode string `json:"writeMode" env:"PERSISTENCE_WRITE_MODE"`
}

type StoreConfig struct {
	// TimeZone used for order timestamps and opening hours
	TimeZone string `json:"timeZone" env:"STORE_TIME_ZONE"`
}
