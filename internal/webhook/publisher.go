package webhook

//go:generate mockgen -source=publisher.go -destination=mocks/publisher_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const (
	fixQueueKey = "location_fix_events"
)

// FixEvent - событие о полученном фиксе, публикуется и для несохраненных фиксов
type FixEvent struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy"`
	CapturedAt time.Time `json:"captured_at"`
	Place      string    `json:"place,omitempty"`
	Persisted  bool      `json:"persisted"`
	SampleID   int64     `json:"sample_id,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// FixPublisher - интерфейс для публикации фиксов наблюдателям
type FixPublisher interface {
	Publish(ctx context.Context, event FixEvent) error
}

// RedisFixPublisher - реализация FixPublisher, использующая очередь Redis
type RedisFixPublisher struct {
	redisClient *redis.Client
}

// NewRedisFixPublisher создает новый RedisFixPublisher
func NewRedisFixPublisher(client *redis.Client) *RedisFixPublisher {
	return &RedisFixPublisher{
		redisClient: client,
	}
}

// Publish публикует событие в очередь Redis
func (p *RedisFixPublisher) Publish(ctx context.Context, event FixEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal fix event: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает BRPOP справа
	if err := p.redisClient.LPush(ctx, fixQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish fix event to Redis: %w", err)
	}
	return nil
}

// kafkaWriter - часть kafka.Writer, нужная издателю
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaFixPublisher пишет события в топик Kafka
type KafkaFixPublisher struct {
	writer kafkaWriter
}

// NewKafkaFixPublisher создает издателя для топика topic
func NewKafkaFixPublisher(brokers []string, topic string) *KafkaFixPublisher {
	return &KafkaFixPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.LeastBytes{},
		},
	}
}

// Publish отправляет событие, ключ сообщения - день фикса
func (p *KafkaFixPublisher) Publish(ctx context.Context, event FixEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal fix event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.CapturedAt.UTC().Format("2006-01-02")),
		Value: payload,
		Time:  event.CapturedAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish fix event to Kafka: %w", err)
	}
	return nil
}

// Close закрывает writer
func (p *KafkaFixPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher используется, когда наблюдатели не настроены
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, FixEvent) error { return nil }
