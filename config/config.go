package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config returns the value of an environment variable, loading .env once on
// first use. Variables already set in the environment win over the file.
func Config(key string) string {
	_ = godotenv.Load(".env")
	return os.Getenv(key)
}

func ConfigInt(key string, fallback int) int {
	raw := Config(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, raw, fallback)
		return fallback
	}
	return n
}

// OrderGracePeriod is how long a PENDING order may stay unpaid before the
// sweeper cancels it and releases its seats. Production runs a short window;
// the 15 minute default matches the checkout expiry shown to the user.
func OrderGracePeriod() time.Duration {
	return time.Duration(ConfigInt("ORDER_GRACE_MINUTES", 15)) * time.Minute
}

// SweepCron is the schedule of the unpaid-order sweeper.
func SweepCron() string {
	if spec := Config("ORDER_SWEEP_CRON"); spec != "" {
		return spec
	}
	return "* * * * *"
}

// PaymentTimeout bounds every call to the checkout provider.
func PaymentTimeout() time.Duration {
	return time.Duration(ConfigInt("CHECKOUT_TIMEOUT_SECONDS", 10)) * time.Second
}
