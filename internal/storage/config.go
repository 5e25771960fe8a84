package storage

import "time"

// Config holds file storage configuration. The backend is selected by
// S3_BUCKET: set means S3, empty means local filesystem.
type Config struct {
	// UploadRoot is the local directory for stored files when S3 is not used.
	UploadRoot string `env:"UPLOAD_ROOT" envDefault:"uploads"`

	S3Bucket   string `env:"S3_BUCKET"`
	S3Endpoint string `env:"S3_ENDPOINT"`

	// S3Region defaults to "auto", which S3-compatible providers such as
	// Cloudflare R2 expect. Plain AWS deployments set a real region.
	S3Region        string `env:"AWS_REGION" envDefault:"auto"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`

	// ForcePathStyle is required by MinIO and most S3-compatible endpoints.
	ForcePathStyle bool `env:"S3_FORCE_PATH_STYLE" envDefault:"true"`

	// PresignTTL bounds the lifetime of generated download URLs.
	PresignTTL time.Duration `env:"S3_PRESIGN_TTL" envDefault:"1h"`
}

// UseS3 reports whether the S3 backend is selected.
func (c Config) UseS3() bool {
	return c.S3Bucket != ""
}
