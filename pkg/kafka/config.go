package kafka

import "time"

// Config holds Kafka connection parameters for producers.
type Config struct {
	// SASLMechanism is "PLAIN", "SCRAM-SHA-256" or "SCRAM-SHA-512".
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string

	Brokers []string

	// BatchTimeout bounds how long a writer waits to fill a batch.
	BatchTimeout time.Duration

	TLS         bool
	SASLEnabled bool
}
