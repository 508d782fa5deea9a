package utils

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig loads a .env file from path (when present) into the process environment
// and enables automatic env lookup on the global viper instance.
func LoadConfig(path string) {
	envFile := filepath.Join(path, ".env")
	if err := godotenv.Load(envFile); err != nil {
		logrus.Debugf("[CONFIG] no .env loaded from %s: %v", envFile, err)
	}

	viper.AutomaticEnv()
}
