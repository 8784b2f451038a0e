package config

type FileConfig struct {
	Order    int
	Disabled bool   `env:"FILE_BACKEND_DISABLED"`
	Path     string `env:"DATA_FILE"`

	// AllowInProduction must be set for the local file to be used when Server.Environment is production
	AllowInProduction bool `json:"allowInProduction" env:"FILE_BACKEND_ALLOW_IN_PRODUCTION"`
}

type GistConfig struct {
	Order    int
	ID       string `json:"id" env:"GIST_ID"`
	Token    string `json:"token" env:"GITHUB_TOKEN"`
	FileName string `json:"fileName" env:"GIST_FILE_NAME"`
	ApiUrl   string `json:"apiUrl" env:"GITHUB_API_URL"`

	TimeoutMillis int64 `json:"timeout"`
}

func (g GistConfig) IsConfigured() bool {
	return g.ID != "" && g.Token != ""
}

type GitConfig struct {
	Order int

	Uri            string `env:"GIT_URI"`
	KnownHostsFile string `json:"knownHostsFile"`
	PrivateKey     string `json:"privateKey" env:"GIT_PRIVATE_KEY"`
	Username       string `json:"username" env:"GIT_USERNAME"`
	Password       string `json:"password" env:"GIT_PASSWORD"`

	Basedir                string `json:"basedir" env:"GIT_BASEDIR"`
	DisableBaseDirCleaning bool   `json:"disableBaseDirCleaning"`
	DefaultBranchName      string `json:"defaultBranchName"`
	FileName               string `json:"fileName"`

	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`

	CloneOnStart bool `json:"clone-on-start"`
	ForcePull    bool `json:"force-pull"`
	ShowProgress bool `json:"showProgress"`

	RefreshRateMillis int64 `json:"refreshRate"`
}

// IsConfigured is true for a clone of Uri, or for a local-only repository when Uri is empty
func (g GitConfig) IsConfigured() bool {
	return g.Basedir != ""
}

type PostgresConfig struct {
	Order int
	Url   string `env:"DATABASE_URL"`
	Table string
	Key   string
}

func (p PostgresConfig) IsConfigured() bool {
	return p.Url != ""
}

type ConfigMapConfig struct {
	Order      int
	Enabled    bool   `env:"CONFIGMAP_ENABLED"` // Must be explicitly enabled
	Kubeconfig string `env:"KUBECONFIG"`        // Path to kubeconfig file (empty = in-cluster auth)
	Namespace  string `env:"CONFIGMAP_NAMESPACE"`
	Name       string `env:"CONFIGMAP_NAME"`
	Key        string
}
