package config

type UploadConfig struct {
	// LocalDir receives uploads when no object storage is configured
	LocalDir string `json:"localDir" env:"UPLOAD_DIR"`
	// AllowLocal enables LocalDir outside development
	AllowLocal   bool  `json:"allowLocal" env:"UPLOAD_ALLOW_LOCAL"`
	MaxSizeBytes int64 `json:"maxSizeBytes"`

	S3 S3Config `json:"s3"`
}

type S3Config struct {
	Bucket          string `env:"S3_BUCKET"`
	Region          string `env:"S3_REGION"`
	Endpoint        string `env:"S3_ENDPOINT"`
	AccessKeyID     string `json:"accessKeyId" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `json:"secretAccessKey" env:"S3_SECRET_ACCESS_KEY"`
	// PublicBaseUrl is prefixed to object keys to form the returned URL
	PublicBaseUrl string `json:"publicBaseUrl" env:"S3_PUBLIC_BASE_URL"`
	UsePathStyle  bool   `json:"usePathStyle"`
}

func (s S3Config) IsConfigured() bool {
	return s.Bucket != "" && (s.Region != "" || s.Endpoint != "")
}

type AdminConfig struct {
	Password      string `env:"ADMIN_PASSWORD"`
	JwtSecret     string `json:"jwtSecret" env:"JWT_SECRET"`
	TokenTtlHours int    `json:"tokenTtlHours"`
}
