package api

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig holds the HTTP server settings. Every key can be overridden
// from the environment, e.g. PARTITION_SERVER_ADDRESS.
type ServerConfig struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxWorkers     int
	MaxBodyBytes   int64
	ConfigFile     string
	ResultLog      string
	AllowedOrigins []string
}

// LoadServerConfig reads the server settings from the environment.
func LoadServerConfig() *ServerConfig {
	v := viper.New()
	v.SetEnvPrefix("partition_server")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("address", ":8080")
	v.SetDefault("read_timeout", 30*time.Second)
	v.SetDefault("write_timeout", 10*time.Minute)
	v.SetDefault("max_workers", 4)
	v.SetDefault("max_body_bytes", int64(256<<20))
	v.SetDefault("config_file", "")
	v.SetDefault("result_log", "")
	v.SetDefault("allowed_origins", []string{"*"})

	return &ServerConfig{
		Address:        v.GetString("address"),
		ReadTimeout:    v.GetDuration("read_timeout"),
		WriteTimeout:   v.GetDuration("write_timeout"),
		MaxWorkers:     v.GetInt("max_workers"),
		MaxBodyBytes:   v.GetInt64("max_body_bytes"),
		ConfigFile:     v.GetString("config_file"),
		ResultLog:      v.GetString("result_log"),
		AllowedOrigins: v.GetStringSlice("allowed_origins"),
	}
}
