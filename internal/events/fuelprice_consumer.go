package events

import (
	"context"
	"encoding/json"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/google/uuid"
	"github.com/rutacostera/service-routes/internal/application"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	"github.com/rutacostera/service-routes/internal/platform/kafka"
)

const (
	// TopicFuelPriceEvents is the Kafka topic carrying external fuel price updates.
	TopicFuelPriceEvents = "fuelprice.events"

	// FuelPriceUpdated is the event type emitted when a market price changes.
	FuelPriceUpdated = "fuelprice.updated"
)

// FuelPriceUpdatedEvent is the payload of an external price update.
type FuelPriceUpdatedEvent struct {
	FuelType      string     `json:"fuel_type"`
	PricePerLiter float64    `json:"price_per_liter"`
	UpdatedBy     *uuid.UUID `json:"updated_by,omitempty"`
}

// FuelPriceEventConsumer listens to fuel price events and applies price updates.
type FuelPriceEventConsumer struct {
	consumer *kafka.Consumer
	service  *application.FuelPriceService
	logger   *zap.Logger
}

// NewFuelPriceEventConsumer creates a new FuelPriceEventConsumer.
func NewFuelPriceEventConsumer(
	brokers []string,
	groupID string,
	service *application.FuelPriceService,
	logger *zap.Logger,
) *FuelPriceEventConsumer {
	consumer := kafka.NewConsumer(brokers, groupID, TopicFuelPriceEvents, logger)
	return &FuelPriceEventConsumer{
		consumer: consumer,
		service:  service,
		logger:   logger,
	}
}

// Start begins consuming fuel price events. This blocks until the context is cancelled.
func (c *FuelPriceEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *FuelPriceEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *FuelPriceEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	var cloudEvent kafka.CloudEvent
	if err := json.Unmarshal(msg.Value, &cloudEvent); err != nil {
		c.logger.Error("failed to parse cloud event from fuel price topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case FuelPriceUpdated:
		return c.handlePriceUpdated(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled fuel price event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *FuelPriceEventConsumer) handlePriceUpdated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt FuelPriceUpdatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse FuelPriceUpdatedEvent data",
			zap.Error(err),
		)
		return nil // Don't retry malformed data
	}

	engine, err := routing.ParseEngineType(evt.FuelType)
	if err != nil {
		c.logger.Warn("ignoring price update for unknown fuel type",
			zap.String("fuel_type", evt.FuelType),
		)
		return nil
	}

	c.logger.Info("processing fuel price update",
		zap.String("fuel_type", string(engine)),
		zap.Float64("price_per_liter", evt.PricePerLiter),
	)

	if err := c.service.ApplyExternalUpdate(ctx, engine, evt.PricePerLiter, evt.UpdatedBy); err != nil {
		c.logger.Error("failed to apply external fuel price update",
			zap.String("fuel_type", string(engine)),
			zap.Error(err),
		)
		return err
	}

	return nil
}
