package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/LifeDrop/donor_service/config"
	"github.com/LifeDrop/donor_service/infra/queue"
	"github.com/LifeDrop/donor_service/internal/mailer"
)

func main() {
	cfg := config.LoadConfig()

	mail := mailer.NewMailService(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
	)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.MailTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		"MAIL",
		mailer.NewHandler(mail),
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("[MAIL] consuming topic=%s broker=%s", cfg.MailTopic, cfg.KafkaBroker)
	consumer.Listen(ctx)
	log.Println("[MAIL] shutting down")
}
