package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config 配置信息
type Config struct {
	App     *App     `json:"app" yaml:"app"`
	Server  *Server  `json:"server" yaml:"server"`
	Static  *Static  `json:"static" yaml:"static"`
	Backend *Backend `json:"backend" yaml:"backend"`
	Redis   *Redis   `json:"redis" yaml:"redis"`
	Session *Session `json:"session" yaml:"session"`
	Log     *Log     `json:"log" yaml:"log"`
	Metrics *Metrics `json:"metrics" yaml:"metrics"`
}

type Server struct {
	Http int `json:"http" yaml:"http"`
}

// Path returns the config file for the given environment.
func Path(env string) string {
	if env == "" {
		env = "dev"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

// New loads the config file and panics on failure.
func New(filename string) *Config {
	conf, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return conf
}

// Load reads filename, applies defaults and environment overrides.
func Load(filename string) (*Config, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}
	return Parse(content)
}

// Parse decodes a YAML document into a Config.
func Parse(content []byte) (*Config, error) {
	var conf Config
	if err := yaml.Unmarshal(content, &conf); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	conf.fill()
	conf.applyEnvOverrides()
	return &conf, nil
}

// Default is the configuration used when no file is present.
func Default() *Config {
	conf := &Config{}
	conf.fill()
	conf.applyEnvOverrides()
	return conf
}

func (c *Config) fill() {
	if c.App == nil {
		c.App = &App{}
	}
	if c.App.Env == "" {
		c.App.Env = "dev"
	}
	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Http == 0 {
		c.Server.Http = 3000
	}
	if c.Static == nil {
		c.Static = &Static{}
	}
	c.Static.fill()
	if c.Backend == nil {
		c.Backend = &Backend{}
	}
	c.Backend.fill()
	if c.Redis == nil {
		c.Redis = &Redis{}
	}
	if c.Session == nil {
		c.Session = &Session{}
	}
	c.Session.fill()
	if c.Log == nil {
		c.Log = &Log{}
	}
	c.Log.fill()
	if c.Metrics == nil {
		c.Metrics = &Metrics{}
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("AGORA_BACKEND_URL"); v != "" {
		c.Backend.BaseURL = v
	}
	if v := os.Getenv("AGORA_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			c.Server.Http = port
		}
	}
}

// Debug 调试模式
func (c *Config) Debug() bool {
	return c.App.Debug
}
