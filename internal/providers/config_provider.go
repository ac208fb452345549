package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"csd/internal/structures"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("webServer.host", "0.0.0.0")
	v.SetDefault("webServer.port", 5000)
	v.SetDefault("schedule.refreshCron", "*/15 * * * *")
	v.SetDefault("schedule.defaultCommentSetting", false)
	v.SetDefault("stream.statusUrl", "http://localhost:8000/status-json.xsl")
	v.SetDefault("stream.mainMountpoint", "stream")
	v.SetDefault("stream.ttl", 5*time.Second)
	v.SetDefault("stream.timeout", 3*time.Second)
	v.SetDefault("comments.clearCron", "0 2 * * *")
	v.SetDefault("comments.maxComments", 2000)
	v.SetDefault("comments.maxNameLength", 20)
	v.SetDefault("comments.maxCommentLength", 250)
	v.SetDefault("comments.parseLinks", true)
	v.SetDefault("comments.linkFormat", `<a href=http://\1 target="_blank">\1</a>`)
	v.SetDefault("http.timeout", 10*time.Second)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.mode", 0644)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.size", 8)
	v.SetDefault("cache.ttl", time.Second)
	v.SetDefault("metrics.enabled", true)
}

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// a missing .env is normal outside of local development
	_ = godotenv.Load()

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")
	setConfigDefaults(v)

	_ = v.BindEnv("logger.level", "CSD_LOG_LEVEL")
	_ = v.BindEnv("schedule.sourceLocation", "CSD_SOURCE_SCHEDULE")
	_ = v.BindEnv("stream.statusUrl", "CSD_STATUS_URL")
	_ = v.BindEnv("stream.mainMountpoint", "CSD_MAIN_MOUNTPOINT")
	_ = v.BindEnv("cache.enabled", "CSD_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "CommentServerDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
