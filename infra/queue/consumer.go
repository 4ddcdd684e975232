package queue

import (
	"context"
	"crypto/tls"
	"log"
	"time"

	"github.com/LifeDrop/donor_service/internal/interfaces"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type KafkaConsumer struct {
	Reader      *kafka.Reader
	Handler     interfaces.ConsumerHandler
	ServiceName string
}

func NewKafkaConsumer(broker, topic, groupID, username, password, serviceName string, handler interfaces.ConsumerHandler) *KafkaConsumer {
	var dialer *kafka.Dialer
	if username != "" {
		dialer = &kafka.Dialer{
			Timeout:       10 * time.Second,
			DualStack:     true,
			TLS:           &tls.Config{},
			SASLMechanism: plain.Mechanism{Username: username, Password: password},
		}
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3,
		MaxBytes: 10e6,
		Dialer:   dialer,
	})

	return &KafkaConsumer{
		Reader:      reader,
		Handler:     handler,
		ServiceName: serviceName,
	}
}

func (kc *KafkaConsumer) Listen(ctx context.Context) {
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[%s] read error: %v", kc.ServiceName, err)
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Key), string(msg.Value)); err != nil {
			log.Printf("[%s] handler error: %v", kc.ServiceName, err)
		}
	}
}

func (kc *KafkaConsumer) Close() error {
	return kc.Reader.Close()
}
