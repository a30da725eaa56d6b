package config

import "os"

type Config struct {
	Port       string
	AuditDB    string
	CORSOrigin string
}

func FromEnv() Config {
	c := Config{}
	c.Port = getenv("PORT", "8080")
	c.AuditDB = getenv("AUDIT_DB", "./pursuit-audit.db")
	c.CORSOrigin = getenv("CORS_ORIGIN", "*")
	return c
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
