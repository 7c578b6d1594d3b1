package events

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// KafkaPublisher menerbitkan event domain ke topic Kafka supaya service
// lain (dispatcher email/SMS, dashboard eksternal) bisa mengkonsumsinya.
// Bersifat opsional: kalau KAFKA_BROKER tidak di-set, publish jadi no-op.
type KafkaPublisher struct {
	writer *kafka.Writer
}

type kafkaEvent struct {
	Entity     string      `json:"entity"`
	Action     string      `json:"action"`
	ResourceID string      `json:"resourceId"`
	Data       interface{} `json:"data"`
	Timestamp  time.Time   `json:"timestamp"`
}

var (
	publisher   *KafkaPublisher
	publisherMu sync.RWMutex
)

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// InitKafka mengaktifkan publisher global
func InitKafka(brokers []string, topic string) {
	publisherMu.Lock()
	defer publisherMu.Unlock()
	publisher = NewKafkaPublisher(brokers, topic)
}

func (p *KafkaPublisher) Publish(ctx context.Context, entity, action, resourceID string, data interface{}) error {
	value, err := json.Marshal(kafkaEvent{
		Entity:     entity,
		Action:     action,
		ResourceID: resourceID,
		Data:       data,
		Timestamp:  time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entity + "." + action),
		Value: value,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// PublishAsync mengirim event fire-and-forget; operasi booking tidak boleh
// terblokir menunggu broker.
func PublishAsync(entity, action, resourceID string, data interface{}) {
	publisherMu.RLock()
	p := publisher
	publisherMu.RUnlock()
	if p == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, entity, action, resourceID, data); err != nil {
			log.Printf("kafka publish error: %v", err)
		}
	}()
}
