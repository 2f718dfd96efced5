package storage

import (
	"io"
	"time"

	"github.com/haierkeys/block-note-service/pkg/code"
	"github.com/haierkeys/block-note-service/pkg/storage/aws_s3"
	"github.com/haierkeys/block-note-service/pkg/storage/cloudflare_r2"
	"github.com/haierkeys/block-note-service/pkg/storage/local_fs"
)

type Type = string

const R2 Type = "r2"
const S3 Type = "s3"
const LOCAL Type = "localfs"

var StorageTypeMap = map[Type]bool{
	R2:    true,
	S3:    true,
	LOCAL: true,
}

// Config Unified storage configuration
type Config struct {
	Type Type `yaml:"type" default:"localfs"`

	// Common settings
	IsEnabled  bool   `yaml:"is-enable" default:"true"`
	CustomPath string `yaml:"custom-path"`

	// Cloud storage (S3/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// Local FS
	SavePath       string `yaml:"save-path" default:"storage/files"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable"`
}

type Storager interface {
	SendFile(pathKey string, file io.Reader, cType string, modTime time.Time) (string, error)
	SendContent(pathKey string, content []byte, modTime time.Time) (string, error)
	Delete(pathKey string) error
}

func NewClient(config *Config) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			IsEnabled:      config.IsEnabled,
			HttpfsIsEnable: config.HttpfsIsEnable,
			SavePath:       config.SavePath,
			CustomPath:     config.CustomPath,
		})
	case R2:
		return cloudflare_r2.NewClient(&cloudflare_r2.Config{
			IsEnabled:       config.IsEnabled,
			AccountID:       config.AccountID,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case S3:
		return aws_s3.NewClient(&aws_s3.Config{
			IsEnabled:       config.IsEnabled,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
