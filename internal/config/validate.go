package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be in [4,31] (got %d)", c.Auth.BcryptCost)
	}

	if err := c.Activities.validate(); err != nil {
		return fmt.Errorf("activities: %w", err)
	}

	if c.AI.RequestTimeout <= 0 {
		return fmt.Errorf("ai.request_timeout must be > 0 (got %v)", c.AI.RequestTimeout)
	}

	return nil
}

func (a *ActivitiesConfig) validate() error {
	if _, err := time.LoadLocation(a.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", a.Timezone, err)
	}
	if a.TimedDuration <= 0 {
		return fmt.Errorf("timed_duration must be > 0 (got %v)", a.TimedDuration)
	}
	if a.QuestionsPerQuiz < 1 || a.QuestionsPerQuiz > 20 {
		return fmt.Errorf("questions_per_quiz must be in [1,20] (got %d)", a.QuestionsPerQuiz)
	}
	return nil
}
