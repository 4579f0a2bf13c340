//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	pgmodule "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rutacostera/service-routes/internal/application"
	"github.com/rutacostera/service-routes/internal/domain/routing"
	routeEvents "github.com/rutacostera/service-routes/internal/events"
	"github.com/rutacostera/service-routes/internal/platform/kafka"
	"github.com/rutacostera/service-routes/internal/repository"
)

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// routesStack holds wired-up estimation service components.
type routesStack struct {
	Estimates       *application.EstimateService
	FuelPrices      *application.FuelPriceService
	Vehicles        *application.VehicleService
	PriceConsumer   *routeEvents.FuelPriceEventConsumer
	CleanupProducer func()
}

// unreachableProvider always fails, forcing the service down the synthesis path.
type unreachableProvider struct{}

func (unreachableProvider) Routes(context.Context, routing.ProviderQuery) ([]routing.CandidateRoute, error) {
	return nil, fmt.Errorf("directions provider offline")
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	// Start PostgreSQL container with log-based wait strategy.
	pgContainer, err := pgmodule.Run(ctx, "postgres:16-alpine",
		pgmodule.WithDatabase("test_routes"),
		pgmodule.WithUsername("test"),
		pgmodule.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Poll until GORM can actually connect and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return false
		}
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	require.NoError(t, db.AutoMigrate(
		&repository.UserModel{},
		&repository.VehicleModel{},
		&repository.FuelPriceModel{},
		&repository.EstimateModel{},
	))

	// Start Kafka container using confluent-local (supports KRaft natively).
	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	// Pre-create required topics.
	createTopics(t, kafkaBrokers, application.TopicRouteEvents, routeEvents.TopicFuelPriceEvents)

	cleanup := func() {
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupRoutesStack wires up the full estimation service stack with an
// unreachable directions provider.
func setupRoutesStack(t *testing.T, db *gorm.DB, brokers []string) *routesStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	estimateRepo := repository.NewGormEstimateRepository(db)
	vehicleRepo := repository.NewGormVehicleRepository(db)
	fuelPriceRepo := repository.NewGormFuelPriceRepository(db)

	producer := kafka.NewProducer(brokers, logger)

	fuelPriceSvc := application.NewFuelPriceService(fuelPriceRepo, logger)
	vehicleSvc := application.NewVehicleService(vehicleRepo, logger)
	estimateSvc := application.NewEstimateService(
		routing.DefaultCatalog(),
		unreachableProvider{},
		time.Second,
		estimateRepo,
		vehicleRepo,
		fuelPriceRepo,
		producer,
		logger,
	)

	groupID := fmt.Sprintf("test-routes-%s", uuid.New().String()[:8])
	consumer := routeEvents.NewFuelPriceEventConsumer(brokers, groupID, fuelPriceSvc, logger)

	return &routesStack{
		Estimates:       estimateSvc,
		FuelPrices:      fuelPriceSvc,
		Vehicles:        vehicleSvc,
		PriceConsumer:   consumer,
		CleanupProducer: func() { _ = producer.Close() },
	}
}

// seedVehicle registers a gasoline vehicle for the given account.
func seedVehicle(t *testing.T, svc *application.VehicleService, ownerID uuid.UUID) uuid.UUID {
	t.Helper()
	dto, err := svc.CreateVehicle(context.Background(), ownerID, application.CreateVehicleRequest{
		Brand:      "Toyota",
		Model:      "Yaris",
		Year:       "2020",
		EngineType: "gasoline",
		EngineSize: "1.5L",
	})
	require.NoError(t, err, "failed to seed vehicle")
	return dto.ID
}

// publishTestEvent publishes a CloudEvent to Kafka.
func publishTestEvent(t *testing.T, brokers []string, topic, source, eventType string, data interface{}) {
	t.Helper()
	logger, _ := zap.NewDevelopment()
	producer := kafka.NewProducer(brokers, logger)
	defer func() { _ = producer.Close() }()

	ce, err := kafka.NewCloudEvent(source, eventType, data)
	require.NoError(t, err, "failed to create cloud event")

	err = producer.PublishEvent(context.Background(), topic, ce)
	require.NoError(t, err, "failed to publish event")
}

// waitForFuelPrice polls the fuel_prices table until the latest record for the
// fuel type matches the expected price.
func waitForFuelPrice(t *testing.T, db *gorm.DB, fuelType string, expected float64, timeout time.Duration) {
	t.Helper()
	require.Eventually(t, func() bool {
		var model repository.FuelPriceModel
		err := db.Where("fuel_type = ?", fuelType).
			Order("effective_at DESC").
			First(&model).Error
		if err != nil {
			return false
		}
		return model.PricePerLiter == expected
	}, timeout, 200*time.Millisecond, "fuel price for %s did not reach %v", fuelType, expected)
}

// consumeOneEvent reads from a Kafka topic until it finds an event of the expected type.
func consumeOneEvent(t *testing.T, brokers []string, topic, expectedType string, timeout time.Duration) kafka.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%s", uuid.New().String()[:8])
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		Topic:       topic,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafkago.FirstOffset,
	})
	defer func() { _ = reader.Close() }()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				t.Fatalf("timed out waiting for event type %q on topic %q", expectedType, topic)
			}
			continue
		}
		ce, err := kafka.ParseCloudEvent(msg.Value)
		if err != nil {
			continue
		}
		if ce.Type == expectedType {
			return ce
		}
	}
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
