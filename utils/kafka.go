package utils

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

// InitializeKafka sets up the producer for the activity topic.
// The service runs without Kafka when KAFKA_BROKERS is unset.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("KAFKA_BROKERS not set, activity events disabled")
		return
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "event-activity"
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	log.Printf("Kafka producer initialized (topic=%s)", topic)
}

// PublishActivity writes one JSON message to the activity topic.
// Failures are logged, never returned to request handlers.
func PublishActivity(ctx context.Context, key string, payload interface{}) {
	if kafkaWriter == nil {
		return
	}

	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("kafka: marshal activity failed: %v", err)
		return
	}

	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := kafkaWriter.WriteMessages(writeCtx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	}); err != nil {
		log.Printf("kafka: write activity failed: %v", err)
	}
}

// NewActivityReader builds a consumer for the activity topic
func NewActivityReader(groupID string) *kafka.Reader {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "event-activity"
	}

	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}
