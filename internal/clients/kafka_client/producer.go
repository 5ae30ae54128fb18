package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/sentiscope/config"
	"github.com/spacesedan/sentiscope/internal/models"
)

type Producer struct {
	producer *kafka.Producer
	topic    string
	done     chan struct{}
}

func NewProducer(cfg config.KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.AnalysisTopic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   cfg.Broker,
		"security.protocol":   "PLAINTEXT", // Force PLAINTEXT
		"api.version.request": "true",      // Ensure correct API version request
		"enable.idempotence":  true,
		"acks":                "all",
		"client.id":           CLIENT_ID,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	kp := &Producer{
		producer: p,
		topic:    cfg.AnalysisTopic,
		done:     make(chan struct{}),
	}
	go kp.watchDeliveries()

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return kp, nil
}

// watchDeliveries drains delivery reports so the events channel never fills.
func (kp *Producer) watchDeliveries() {
	defer close(kp.done)
	for e := range kp.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				slog.Warn("[KafkaClient] Delivery failed",
					slog.String("key", string(ev.Key)),
					slog.String("error", ev.TopicPartition.Error.Error()))
			}
		case kafka.Error:
			slog.Warn("[KafkaClient] Producer error", slog.String("error", ev.Error()))
		}
	}
}

// PublishAnalysis enqueues event keyed by its id. Delivery is asynchronous.
func (kp *Producer) PublishAnalysis(ctx context.Context, event models.AnalysisEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to marshal event: %w", err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &kp.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.EventID),
		Value:          jsonData,
	}

	for i := 0; i < MAX_RETRIES; i++ {
		err = kp.producer.Produce(msg, nil)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	slog.Debug("[KafkaClient] Published analysis event",
		slog.String("topic", kp.topic),
		slog.String("event_id", event.EventID))
	return nil
}

func (kp *Producer) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := kp.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	kp.producer.Close()
	<-kp.done
	slog.Info("[KafkaClient] Kafka producer shut down")
}
