package config

import (
	"errors"
	"fmt"
)

// Validate checks the startup requirements. The review API key is the only
// hard requirement; everything else degrades gracefully.
func (c *Config) Validate() error {
	if c.ReviewAPI.Key == "" {
		return errors.New("REVIEW_API_KEY is required")
	}

	switch c.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}

	if c.HasSMTP() && c.SMTP.Port <= 0 {
		return fmt.Errorf("invalid SMTP port %d", c.SMTP.Port)
	}

	return nil
}
