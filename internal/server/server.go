package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/akolanti/PDFSummarizer/internal/adapter/utils"
	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/middleware"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

var (
	server     *http.Server
	_logger    *logger_i.Logger
	routesOnce sync.Once
)

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	WorkerStop       chan bool
	Group            *sync.WaitGroup
	CloseServices    context.CancelFunc
}

// Handler registers every route on the shared router and returns it.
func Handler() http.Handler {
	r := utils.GetRouter()
	routesOnce.Do(func() {
		r.Router.Get("/", middleware.FormHandler)
		r.Router.Post("/summarize", middleware.SubmitFormHandler)
		r.Router.Get("/healthz", middleware.GetHandler)

		r.Router.Route("/api", func(api chi.Router) {
			api.Use(cors.Handler(cors.Options{
				AllowedOrigins: []string{"*"},
				AllowedMethods: []string{"GET", "POST", "OPTIONS"},
				AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Trace-Id"},
				ExposedHeaders: []string{"X-Trace-Id"},
				MaxAge:         300,
			}))
			api.Post("/summarize", middleware.PostSummarizeHandler)
			api.Get("/status/{id}", middleware.GetStatusHandler)
		})
	})
	return r.Router
}

func CreateServer(listenAddr string, writeTimeout time.Duration) {
	_logger = logger_i.NewLogger("Server")

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		server.SetKeepAlivesEnabled(false)

		if err := server.Shutdown(ctx); err != nil {
			_logger.Error("Could not shutdown gracefully", "error", err)
		}

		//close workers
		close(shutdownParams.WorkerStop)
		shutdownParams.Group.Wait()
		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully shut down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
}
