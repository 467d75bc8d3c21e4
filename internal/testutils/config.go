package testutils

import "business-hub-backend/internal/config"

// NewTestConfig returns a validated-looking configuration for unit tests
func NewTestConfig() *config.Config {
	return &config.Config{
		Environment:          "test",
		Port:                 "8080",
		LogLevel:             "error",
		AppName:              "business-hub-backend",
		APIPrefix:            "/api/v1",
		DatabaseURL:          "sqlite://file::memory:",
		JWTSecret:            "test-secret",
		JWTExpirationMinutes: 60,
		InvitationTTLHours:   24,
		BcryptCost:           4,
		ServerURL:            "http://localhost:8080",
		FrontendURL:          "http://localhost:3000",
		AllowedOrigins:       []string{"http://localhost:3000"},
		MailPort:             587,
	}
}
