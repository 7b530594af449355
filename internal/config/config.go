package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the wiring knobs for the cmd binaries.
type Config struct {
	HTTPAddr     string
	KafkaBrokers []string
	EventTopic   string
}

// Load reads an optional .env file, then the environment. A missing .env is
// not an error; a present-but-unreadable one is logged so a typo'd file is
// not silently ignored. Every field has a working default, and Kafka is
// disabled unless KAFKA_BROKERS is set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("loading .env: %v", err)
	}

	cfg := Config{
		HTTPAddr:   getenv("HTTP_ADDR", ":8080"),
		EventTopic: getenv("EVENT_TOPIC", "transaction_recorded"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
