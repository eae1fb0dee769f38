package config

import "os"

type Config struct {
	Port          string
	DBHost        string
	DBPort        string
	CacheHost     string
	CachePort     string
	JaegerAddress string
}

func NewConfig() *Config {
	return &Config{
		Port:          os.Getenv("STAYVISTA_SERVICE_PORT"),
		DBHost:        os.Getenv("STAYVISTA_DB_HOST"),
		DBPort:        os.Getenv("STAYVISTA_DB_PORT"),
		CacheHost:     os.Getenv("STAYVISTA_CACHE_HOST"),
		CachePort:     os.Getenv("STAYVISTA_CACHE_PORT"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
	}
}
