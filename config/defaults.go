package config

const (
	DefaultDataFile      = "data/data.json"
	DefaultGistFileName  = "data.json"
	DefaultGitHubApiUrl  = "https://api.github.com"
	DefaultPostgresTable = "configs"
	DefaultStoreKey      = "current_store"
	DefaultConfigMapKey  = "data.json"
	DefaultUploadDir     = "public/uploads"
	DefaultTimeZone      = "America/Sao_Paulo"
)

// ApplyDefaults fills every unset value that has a sensible default
func (c *ApplicationConfiguration) ApplyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 80
	}
	if c.Server.Environment == "" {
		c.Server.Environment = EnvironmentDevelopment
	}
	if c.Persistence.WriteMode == "" {
		c.Persistence.WriteMode = WriteModeFirst
	}
	if c.Store.TimeZone == "" {
		c.Store.TimeZone = DefaultTimeZone
	}

	if c.File.Path == "" {
		c.File.Path = DefaultDataFile
	}
	if c.Gist.FileName == "" {
		c.Gist.FileName = DefaultGistFileName
	}
	if c.Gist.ApiUrl == "" {
		c.Gist.ApiUrl = DefaultGitHubApiUrl
	}
	if c.Gist.TimeoutMillis <= 0 {
		c.Gist.TimeoutMillis = 15000
	}
	if c.Git.FileName == "" {
		c.Git.FileName = DefaultGistFileName
	}
	if c.Postgres.Table == "" {
		c.Postgres.Table = DefaultPostgresTable
	}
	if c.Postgres.Key == "" {
		c.Postgres.Key = DefaultStoreKey
	}
	if c.ConfigMap.Key == "" {
		c.ConfigMap.Key = DefaultConfigMapKey
	}
	if c.ConfigMap.Namespace == "" {
		c.ConfigMap.Namespace = "default"
	}
	if c.ConfigMap.Name == "" {
		c.ConfigMap.Name = "storefront-data"
	}

	// lower is higher priority
	defaultOrder(&c.Gist.Order, 10)
	defaultOrder(&c.Git.Order, 20)
	defaultOrder(&c.Postgres.Order, 30)
	defaultOrder(&c.ConfigMap.Order, 40)
	defaultOrder(&c.File.Order, 100)

	if c.Upload.LocalDir == "" {
		c.Upload.LocalDir = DefaultUploadDir
	}
	if c.Upload.MaxSizeBytes <= 0 {
		c.Upload.MaxSizeBytes = 10 << 20
	}
	if c.Admin.TokenTtlHours <= 0 {
		c.Admin.TokenTtlHours = 12
	}
}

func defaultOrder(order *int, def int) {
	if *order == 0 {
		*order = def
	}
}
