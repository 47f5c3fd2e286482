package config

type Log struct {
	Level string `json:"level" yaml:"level"`
	// File enables rotated file output next to stdout.
	File       string `json:"file" yaml:"file"`
	MaxSize    int    `json:"max_size" yaml:"max_size"`
	MaxBackups int    `json:"max_backups" yaml:"max_backups"`
	MaxAge     int    `json:"max_age" yaml:"max_age"`
}

func (l *Log) fill() {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.MaxSize <= 0 {
		l.MaxSize = 100
	}
}
