package kafka_client

const (
	CLIENT_ID        = "sentiscope-api"
	MAX_RETRIES      = 3
	FLUSH_TIMEOUT_MS = 5000
)
