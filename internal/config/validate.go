package config

import (
	"fmt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket must not be empty")
	}
	if c.Storage.PresignTTL <= 0 {
		return fmt.Errorf("storage.presign_ttl must be > 0 (got %v)", c.Storage.PresignTTL)
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("storage.max_upload_bytes must be > 0 (got %d)", c.Storage.MaxUploadBytes)
	}

	if c.Dispatch.BatchSize <= 0 {
		return fmt.Errorf("dispatch.batch_size must be > 0 (got %d)", c.Dispatch.BatchSize)
	}
	if c.Dispatch.Interval <= 0 {
		return fmt.Errorf("dispatch.interval must be > 0 (got %v)", c.Dispatch.Interval)
	}

	if c.Server.RateLimitRPS <= 0 {
		return fmt.Errorf("server.rate_limit_rps must be > 0 (got %d)", c.Server.RateLimitRPS)
	}

	return nil
}
