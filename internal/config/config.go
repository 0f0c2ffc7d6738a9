package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	SweepInterval     time.Duration `mapstructure:"sweep_interval" yaml:"sweep_interval"`
	SendBuffer        int           `mapstructure:"send_buffer" yaml:"send_buffer"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	UsersFile         string        `mapstructure:"users_file" yaml:"users_file"`
	SessionSecret     string        `mapstructure:"session_secret" yaml:"session_secret"`
	SessionTTL        time.Duration `mapstructure:"session_ttl" yaml:"session_ttl"`
	LoginRateLimit    int           `mapstructure:"login_rate_limit" yaml:"login_rate_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":10001",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		SweepInterval:     time.Second,
		SendBuffer:        8,
		LogLevel:          "info",
		UsersFile:         "static/default_users.json",
		SessionSecret:     "superdupersecret",
		SessionTTL:        24 * time.Hour,
		LoginRateLimit:    60,
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.SweepInterval != 0 {
		c.SweepInterval = other.SweepInterval
	}
	if other.SendBuffer != 0 {
		c.SendBuffer = other.SendBuffer
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.UsersFile != "" {
		c.UsersFile = other.UsersFile
	}
	if other.SessionSecret != "" {
		c.SessionSecret = other.SessionSecret
	}
	if other.SessionTTL != 0 {
		c.SessionTTL = other.SessionTTL
	}
	if other.LoginRateLimit != 0 {
		c.LoginRateLimit = other.LoginRateLimit
	}
}
