package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/audit"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/config"
	kafkax "github.com/MohanPrasathSece/Lumi-Co-Backend/internal/kafka"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/orders"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/postgres"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/redisx"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &audit.Service{
		Store:       &audit.EventLog{DB: db},
		Redis:       rdb,
		ServiceName: cfg.ServiceName + "-auditor",
	}

	group := cfg.AuditorGroup
	workers := cfg.AuditorWorkers
	topics := []string{orders.TopicOrderCreated, orders.TopicOrderPaid, orders.TopicOrderPaymentFailed}

	for _, topic := range topics {
		cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, topic, workers)
		go func(topic string) {
			log.Printf("auditor consumer started: group=%s topic=%s workers=%d", group, topic, workers)
			if err := cons.Start(ctx, svc.HandleEvent); err != nil {
				log.Printf("consumer %s exit: %v", topic, err)
				cancel()
			}
		}(topic)
	}

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumers...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}
