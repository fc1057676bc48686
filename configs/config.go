package config

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/joho/godotenv"
)

var InstanceId string

// LoadEnv loads ./.env into the process environment when the file exists.
// Variables already set in the environment win.
func LoadEnv(service string) {
	log.Infof("%s service configuration and env variables loading started ...", service)
	err := godotenv.Load("./.env")
	if err != nil {
		log.Warnf("no .env file loaded, using process environment: %v", err)
		return
	}

	log.Info(".env file loaded.")
}

func CreateUniqueInstance(service string) (string, error) {
	id, err := uuid.NewV4() // instance identifier
	if err != nil {
		return "", fmt.Errorf("error generating instanceId: %w", err)
	}
	InstanceId = id.String()
	log.Infof("%s service with Instance ID: %s is ready", service, id)
	return InstanceId, nil
}

func GetInstanceId() string {
	return InstanceId
}

// CORS allows any origin. The catalog API carries no credentials.
func CORS() *cors.Cors {
	corsOptions := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "X-Requested-With", "Content-Type", "Accept"},
		MaxAge:         300, // Maximum value not ignored by any of major browsers
	})

	return corsOptions
}

// Logging configures the package logger. An empty dir keeps logs on stderr,
// otherwise they are appended to <dir>/<service>.log.
func Logging(service, level, format, dir string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if dir == "" {
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create folder for log: %w", err)
	}

	logFilePath := filepath.Join(dir, service+".log")
	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	log.SetOutput(file)
	log.Infof("log to file started for service: %s", service)
	return file, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func CustomLoggerMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.WithFields(log.Fields{
					"request_id": middleware.GetReqID(r.Context()),
					"remote":     r.RemoteAddr,
					"status":     ww.Status(),
					"bytes":      ww.BytesWritten(),
					"latency":    time.Since(start).String(),
				}).Infof("%s %s %d %s", r.Method, r.RequestURI, ww.Status(), http.StatusText(ww.Status()))
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
