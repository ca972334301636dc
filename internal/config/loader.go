package config

import (
	"fmt"

	"github.com/clinforge/sdtm/internal/db"
	"github.com/spf13/viper"
)

// Server holds HTTP server configuration.
type Server struct {
	Port        int
	CORSOrigins []string
}

// Pipeline holds study-level pipeline defaults.
type Pipeline struct {
	StudyID           string
	SubjectTokenWidth int
	Workers           int
	ArchiveEnabled    bool
}

// Config is the full application configuration.
type Config struct {
	Database db.Config
	Server   Server
	Pipeline Pipeline
}

// Defaults returns the built-in configuration used when no config file or
// environment overrides are present.
func Defaults() Config {
	return Config{
		Database: db.DefaultConfig(),
		Server: Server{
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Pipeline: Pipeline{
			SubjectTokenWidth: 3,
			ArchiveEnabled:    false,
		},
	}
}

// Load reads config.yaml from the given path, applying environment
// overrides with the SDTM_ prefix (SDTM_DATABASE_HOST and friends).
func Load(configPath string) (Config, error) {
	cfg := Defaults()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AutomaticEnv() // allow environment overrides
	v.SetEnvPrefix("SDTM")

	// Optional: Map nested keys to flat env vars
	v.BindEnv("database.host")
	v.BindEnv("database.port")
	v.BindEnv("database.user")
	v.BindEnv("database.password")
	v.BindEnv("database.dbname")
	v.BindEnv("database.sslmode")
	v.BindEnv("server.port")
	v.BindEnv("pipeline.study_id")
	v.BindEnv("pipeline.workers")
	v.BindEnv("pipeline.archive_enabled")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found? Just log it, use defaults + env
		fmt.Println("No config.yaml found, using defaults and env vars")
	} else {
		fmt.Println("Loaded config.yaml")
	}

	// Override defaults if values exist
	if v.IsSet("database.host") {
		cfg.Database.Host = v.GetString("database.host")
	}
	if v.IsSet("database.port") {
		cfg.Database.Port = v.GetInt("database.port")
	}
	if v.IsSet("database.user") {
		cfg.Database.User = v.GetString("database.user")
	}
	if v.IsSet("database.password") {
		cfg.Database.Password = v.GetString("database.password")
	}
	if v.IsSet("database.dbname") {
		cfg.Database.DBName = v.GetString("database.dbname")
	}
	if v.IsSet("database.sslmode") {
		cfg.Database.SSLMode = v.GetString("database.sslmode")
	}

	if v.IsSet("server.port") {
		cfg.Server.Port = v.GetInt("server.port")
	}
	if v.IsSet("server.cors_origins") {
		cfg.Server.CORSOrigins = v.GetStringSlice("server.cors_origins")
	}

	if v.IsSet("pipeline.study_id") {
		cfg.Pipeline.StudyID = v.GetString("pipeline.study_id")
	}
	if v.IsSet("pipeline.subject_token_width") {
		cfg.Pipeline.SubjectTokenWidth = v.GetInt("pipeline.subject_token_width")
	}
	if v.IsSet("pipeline.workers") {
		cfg.Pipeline.Workers = v.GetInt("pipeline.workers")
	}
	if v.IsSet("pipeline.archive_enabled") {
		cfg.Pipeline.ArchiveEnabled = v.GetBool("pipeline.archive_enabled")
	}

	return cfg, nil
}
