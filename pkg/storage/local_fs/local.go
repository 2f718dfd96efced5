package local_fs

type Config struct {
	IsEnabled      bool   `yaml:"is-enable" default:"true"`
	HttpfsIsEnable bool   `yaml:"httpfs-is-enable" default:"true"`
	SavePath       string `yaml:"save-path" default:"storage/uploads"`
	CustomPath     string `yaml:"custom-path"`
}

type LocalFS struct {
	Config *Config
}

func NewClient(cf *Config) (*LocalFS, error) {
	return &LocalFS{Config: cf}, nil
}
