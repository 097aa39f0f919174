package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-admin/config"
	"github.com/oksasatya/go-user-admin/internal/interface/worker"
	"github.com/oksasatya/go-user-admin/pkg/helpers"
	"github.com/oksasatya/go-user-admin/pkg/mailer"
	mailtpl "github.com/oksasatya/go-user-admin/pkg/mailer/templates"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; event worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQUserEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, ch, err := helpers.DialQueue(cfg.RabbitMQURL, cfg.RabbitMQUserEventsQueue)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQUserEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	handler := &worker.AccountMailer{
		Sender: mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender),
		Branding: mailtpl.Branding{
			CompanyName: cfg.CompanyName,
			AppName:     cfg.AppName,
			SupportURL:  cfg.SupportURL,
		},
		Logger: logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			c, cancelMsg := context.WithTimeout(ctx, 15*time.Second)
			err := handler.Handle(c, msg.Body)
			cancelMsg()

			entry := logger.WithFields(logrus.Fields{"delivery_tag": msg.DeliveryTag, "redelivered": msg.Redelivered})
			switch worker.Settle(err, msg.Redelivered) {
			case worker.Ack:
				_ = msg.Ack(false)
			case worker.Drop:
				entry.WithError(err).Warn("dropping message")
				_ = msg.Nack(false, false)
			case worker.Requeue:
				entry.WithError(err).Error("handle failed; requeueing once")
				_ = msg.Nack(false, true)
			}
		}
	}()

	logger.Infof("event worker listening on queue=%s", cfg.RabbitMQUserEventsQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
