package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/marrcelo/shipstore/internal/messaging/kafka"
)

const defaultGroupID = "shipstore-order-events"

// setupLogger настраивает формат и уровень логирования для consumer.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

func main() {
	setupLogger()
	logger := log.WithField("component", "order-events")

	brokersEnv := os.Getenv("KAFKA_BROKERS")
	if brokersEnv == "" {
		logger.Fatal("KAFKA_BROKERS is required")
	}
	brokers := strings.Split(brokersEnv, ",")

	groupID := os.Getenv("SHIPSTORE_CONSUMER_GROUP")
	if groupID == "" {
		groupID = defaultGroupID
	}

	// DLQ producer: сообщения, не разобранные после всех retry, уходят в
	// отдельный topic вместо блокировки партиции.
	dlqProducer, err := kafka.NewProducer(brokers)
	if err != nil {
		logger.WithError(err).Warn("failed to create DLQ producer, continuing without DLQ")
		dlqProducer = nil
	}

	consumer, err := kafka.NewConsumerWithDLQ(
		brokers,
		groupID,
		[]string{kafka.TopicOrderEvents},
		handleOrderEvent(logger),
		dlqProducer,
		3,
	)
	if err != nil {
		logger.WithError(err).Fatal("failed to create kafka consumer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil {
		logger.WithError(err).Fatal("failed to start kafka consumer")
	}

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем consumer")

	if err := consumer.Stop(); err != nil {
		logger.WithError(err).Warn("consumer stopped with error")
	}
	if dlqProducer != nil {
		if err := dlqProducer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close DLQ producer")
		}
	}
}

// handleOrderEvent логирует каждое событие order_created из потока.
func handleOrderEvent(logger *log.Entry) kafka.MessageHandler {
	return func(_ context.Context, message *sarama.ConsumerMessage) error {
		event, err := kafka.ParseOrderCreatedEvent(message)
		if err != nil {
			return err
		}

		logger.WithFields(log.Fields{
			"event_id":   event.EventID,
			"event_type": event.EventType,
			"order_id":   event.OrderID,
			"details":    len(event.OrderDetails),
			"timestamp":  event.Timestamp,
		}).Info("order event received")
		return nil
	}
}
