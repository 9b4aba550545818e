package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/scholar-notify/internal/application/appnotification"
	"github.com/scholar-notify/internal/application/deliveryrecord"
	"github.com/scholar-notify/internal/application/dispatch"
	"github.com/scholar-notify/internal/config"
	"github.com/scholar-notify/internal/infrastructure/dynamo"
	"github.com/scholar-notify/internal/infrastructure/memory"
	natsinfra "github.com/scholar-notify/internal/infrastructure/nats"
	"github.com/scholar-notify/internal/infrastructure/render"
	"github.com/scholar-notify/internal/infrastructure/smtp"
	"github.com/scholar-notify/internal/pkg/logger"
	transporthttp "github.com/scholar-notify/internal/transport/http"
	"github.com/scholar-notify/internal/transport/queue"
)

type stores struct {
	records deliveryrecord.Service
	feed    appnotification.Service
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	slogger := logger.Init(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatalf("store setup: %v", err)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("templates: %v", err)
	}
	mailer := smtp.NewTemplateMailer(renderer, smtp.NewMailer(cfg), cfg.AppName)

	dispatcher := dispatch.New(dispatch.Deps{
		Sender:  mailer,
		Records: st.records,
		Feed:    st.feed,
		AppName: cfg.AppName,
		Logger:  slogger,
	})

	nc, err := natsinfra.NewClient(cfg.NATSURL, "notification-service")
	if err != nil {
		log.Fatalf("queue: %v", err)
	}
	listener := queue.NewListener(dispatcher, slogger)
	if _, err := nc.QueueSubscribe(ctx, cfg.NATSSubject, cfg.NATSQueue, listener.Handle); err != nil {
		log.Fatalf("queue: %v", err)
	}
	log.Printf("Consuming %s (queue group %s)", cfg.NATSSubject, cfg.NATSQueue)

	router := transporthttp.NewRouter(ctx, cfg, &transporthttp.Deps{
		Feed:    st.feed,
		Records: st.records,
		Checks:  map[string]func() bool{"nats": nc.IsConnected},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, store=%s)", cfg.AppPort, cfg.AppEnv, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	log.Println("Shutting down...")
	// Stop taking new messages and let in-flight dispatches finish first.
	if err := nc.Drain(); err != nil {
		log.Printf("WARN: nats drain: %v", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.StoreBackend == config.StoreMemory {
		log.Println("WARN: using in-memory stores, nothing will be persisted")
		return &stores{
			records: deliveryrecord.NewService(memory.NewDeliveryRecordStore()),
			feed:    appnotification.NewService(memory.NewAppNotificationStore()),
		}, nil
	}

	client, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	// Creates the tables and GSIs if they don't exist.
	dynamo.Bootstrap(ctx, client, cfg.DynamoTables)
	return &stores{
		records: deliveryrecord.NewService(dynamo.NewDeliveryRecordRepo(client, cfg.DynamoTables.DeliveryRecords)),
		feed:    appnotification.NewService(dynamo.NewAppNotificationRepo(client, cfg.DynamoTables.AppNotifications)),
	}, nil
}
