package config

import (
	"errors"
	"testing"

	"gorm.io/gorm/logger"
)

func TestNewDatabase_RequiresURL(t *testing.T) {
	if _, err := NewDatabase(&Config{}); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("err = %v, want ErrNoDatabase", err)
	}
}

func TestGormLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug": logger.Info,
		"warn":  logger.Warn,
		"error": logger.Error,
		"info":  logger.Silent,
		"":      logger.Silent,
	}
	for level, want := range tests {
		if got := gormLogLevel(level); got != want {
			t.Errorf("gormLogLevel(%q) = %v, want %v", level, got, want)
		}
	}
}
