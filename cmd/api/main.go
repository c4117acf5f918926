// @title           PDF Summarizer API
// @version         1.0
// @description     Summarizes uploaded documents with an llm, using map reduce or refine over their chunks.

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:7860
// @BasePath  /
// @schemes   http https

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/akolanti/PDFSummarizer/internal/bootstrap"
	"github.com/akolanti/PDFSummarizer/internal/config"
	"github.com/akolanti/PDFSummarizer/internal/data/store"
	jobmodel "github.com/akolanti/PDFSummarizer/internal/domain/jobModel"
	"github.com/akolanti/PDFSummarizer/internal/handlers"
	"github.com/akolanti/PDFSummarizer/internal/job"
	"github.com/akolanti/PDFSummarizer/internal/middleware"
	"github.com/akolanti/PDFSummarizer/internal/server"
	"github.com/akolanti/PDFSummarizer/internal/worker"
	"github.com/akolanti/PDFSummarizer/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {
	settings, err := config.Load()
	logger_i.Init(logger_i.Options{IsProd: settings.IsProd, Level: settings.SlogLevel()})
	var logger = logger_i.NewLogger("main")
	if err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	flag.StringVar(&listenAddr, "listen-addr", settings.ListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	summarizer, err := bootstrap.NewSummarizer(serviceContext, settings)
	if err != nil {
		logger.Error("Could not create the summarizer. Shutting down.", "error", err)
		return
	}
	logger.Info("Summarizer ready", "provider", settings.LLMProvider, "model", settings.LLMModel)

	//init job service and job store
	service := job.InitJobService(job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.NewJobStore(serviceContext, settings.RedisAddr, settings.RedisPassword),
	})
	logger.Info("Starting job service")

	uploads := handlers.UploadConfig{
		Dir:            settings.UploadDir,
		MaxBytes:       settings.MaxUploadBytes,
		RequestTimeout: settings.RequestTimeout,
	}
	handlers.InitJobHandler(service, uploads)
	handlers.InitFormHandler(summarizer, uploads)
	middleware.Init(settings.AuthToken)

	//init worker pool
	worker.InitServices(service, summarizer, settings.RequestTimeout)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.CreateServer(listenAddr, settings.WriteTimeout())
	go server.ShutDownHandler(shutdownParams)

	<-stopExecution
	logger.Info("Server stopped")
}
