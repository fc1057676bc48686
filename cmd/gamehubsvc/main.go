package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"

	config "github.com/avvvet/gamehub-services/configs"
	"github.com/avvvet/gamehub-services/internal/gamehub/broker"
	gamehubcfg "github.com/avvvet/gamehub-services/internal/gamehub/config"
	"github.com/avvvet/gamehub-services/internal/gamehub/handlers"
	"github.com/avvvet/gamehub-services/internal/gamehub/service"
	"github.com/avvvet/gamehub-services/internal/gamehub/store"
	"github.com/avvvet/gamehub-services/internal/gamehub/ws"
	nats "github.com/avvvet/gamehub-services/internal/nats"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "gamehub"

func main() {
	config.LoadEnv(SERVICE_NAME)

	cfg, err := gamehubcfg.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	instanceId, err := config.CreateUniqueInstance(SERVICE_NAME)
	if err != nil {
		log.Fatalf("Failed to create instance id: %v", err)
	}

	logFile, err := config.Logging(SERVICE_NAME+"_service_"+instanceId, cfg.LogLevel, cfg.LogFormat, cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	// store connection
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	gameStore, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatalf("Failed to open %s store: %v", store.Backend(cfg.DatabaseURL), err)
	}
	if err := gameStore.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatalf("Failed to create games schema: %v", err)
	}
	if cfg.SeedSampleData {
		n, err := gameStore.SeedIfEmpty(ctx)
		if err != nil {
			cancel()
			log.Fatalf("Failed to seed sample games: %v", err)
		}
		if n > 0 {
			log.Infof("seeded %d sample games", n)
		}
	}
	cancel()
	log.Infof("%s store ready", store.Backend(cfg.DatabaseURL))

	hub := ws.NewHub(instanceId)

	// events go straight to local sockets unless NATS fans them out to every instance
	var publisher service.EventPublisher = hub
	var n *nats.Nats
	if cfg.NatsURL != "" {
		n, err = nats.Connect(cfg.NatsURL, cfg.NatsToken, SERVICE_NAME+"_"+instanceId)
		if err != nil {
			log.Fatalf("Error: unable to connect to NATS server %v", err)
		}
		log.Printf("NATS connection established successfully %s", n.Url)

		b := broker.NewBroker(n.Conn, hub.Broadcast)
		if _, err := b.SubscribeGameEvents(); err != nil {
			log.Fatalf("Error: unable to subscribe to %s %v", broker.GameEventsSubject, err)
		}
		publisher = b
	}

	gameQueryService := service.NewGameQueryService(gameStore)
	gameCommandService := service.NewGameCommandService(gameStore, service.WithPublisher(publisher))

	// Init handlers and routes
	h := handlers.NewHandler(gameQueryService, gameCommandService, gameStore, hub, instanceId)
	r := handlers.NewRouter(h, handlers.RouterOptions{
		RateLimit:      cfg.RateLimit,
		RequestTimeout: cfg.RequestTimeout,
	})

	// Create server with timeout settings
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			SERVICE_NAME: func(ctx context.Context) error {
				var errs []error
				if err := server.Shutdown(ctx); err != nil {
					errs = append(errs, err)
				}
				if n != nil {
					if err := n.Conn.Drain(); err != nil {
						errs = append(errs, err)
					}
				}
				hub.Close()
				if err := gameStore.Close(); err != nil {
					errs = append(errs, err)
				}
				return errors.Join(errs...)
			},
		},
	)

	exitCode := <-wait
	log.Infof("%s service stopped with code %d", SERVICE_NAME, exitCode)
	logFile.Close()
	os.Exit(exitCode)
}
