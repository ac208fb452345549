package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type ScheduleConfig struct {
	SourceLocation        string `yaml:"sourceLocation" validate:"required"`
	FilePath              string `yaml:"filePath" validate:"required|unixPath"`
	RefreshCron           string `yaml:"refreshCron" validate:"required"`
	DefaultCommentSetting bool   `yaml:"defaultCommentSetting"`
}

type StreamConfig struct {
	StatusURL      string        `yaml:"statusUrl" validate:"required"`
	MainMountpoint string        `yaml:"mainMountpoint" validate:"required"`
	TTL            time.Duration `yaml:"ttl"`
	Timeout        time.Duration `yaml:"timeout"`
}

type CommentsConfig struct {
	Dir              string `yaml:"dir" validate:"required|unixPath"`
	ClearCron        string `yaml:"clearCron" validate:"required"`
	MaxComments      int    `yaml:"maxComments" validate:"required|min:1"`
	MaxNameLength    int    `yaml:"maxNameLength" validate:"required|min:1"`
	MaxCommentLength int    `yaml:"maxCommentLength" validate:"required|min:1"`
	ParseLinks       bool   `yaml:"parseLinks"`
	LinkFormat       string `yaml:"linkFormat"`
}

type HttpConfig struct {
	Timeout time.Duration `yaml:"timeout"`
}

type AccountsConfig struct {
	FilePath string `yaml:"filePath" validate:"required|unixPath"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Schedule  ScheduleConfig `yaml:"schedule"`
	Stream    StreamConfig   `yaml:"stream"`
	Comments  CommentsConfig `yaml:"comments"`
	Http      HttpConfig     `yaml:"http"`
	Accounts  AccountsConfig `yaml:"accounts"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
