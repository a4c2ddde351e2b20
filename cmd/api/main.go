package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/config"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/gateway"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/httpx"
	kafkax "github.com/MohanPrasathSece/Lumi-Co-Backend/internal/kafka"
	"github.com/MohanPrasathSece/Lumi-Co-Backend/internal/mail"
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
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers, one per order topic
	pCreated := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	pCreated.Start(ctx)
	pPaid := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPaid, 1024)
	pPaid.Start(ctx)
	pFailed := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPaymentFailed, 1024)
	pFailed.Start(ctx)

	// Payment gateway: requests are rejected, not crashed, when unconfigured.
	var gw httpx.Gateway
	if c := gateway.New(cfg.RazorpayKeyID, cfg.RazorpaySecret); c != nil {
		gw = c
	} else {
		log.Println("razorpay credentials missing, order endpoints will reject requests")
	}

	// Mail
	sender := mail.NewSender(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUser,
		Password: cfg.SMTPPass,
		From:     cfg.EmailFrom,
	})
	notifier := &mail.Notifier{Sender: sender, SellerEmail: cfg.SellerEmail}

	// Handler
	router := httpx.NewRouter(cfg.AllowedOrigins)
	oh := &httpx.OrdersHandler{
		Store:    &orders.Repo{DB: db},
		Gateway:  gw,
		Notifier: notifier,
		Redis:    rdb,
		Created:  pCreated,
		Paid:     pPaid,
		Failed:   pFailed,
		Currency: cfg.Currency,
		Service:  cfg.ServiceName,
	}
	oh.Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	// flush & close producers
	for _, p := range []*kafkax.Producer{pCreated, pPaid, pFailed} {
		p.Close()
	}
	cancel()
	for _, p := range []*kafkax.Producer{pCreated, pPaid, pFailed} {
		p.WaitClosed()
	}
}
