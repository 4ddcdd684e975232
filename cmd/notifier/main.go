package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/LifeDrop/donor_service/config"
	"github.com/LifeDrop/donor_service/infra/queue"
	"github.com/LifeDrop/donor_service/internal/notifier"
	"github.com/LifeDrop/donor_service/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.LoadConfig()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("[NOTIFY] database connection failed: %v", err)
	}

	handler := notifier.NewHandler(
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
	)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.RequestTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		"NOTIFY",
		handler,
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("[NOTIFY] consuming topic=%s broker=%s", cfg.RequestTopic, cfg.KafkaBroker)
	consumer.Listen(ctx)
	log.Println("[NOTIFY] shutting down")
}
