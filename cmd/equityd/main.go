package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/pokerlab/equitysim/internal/server"
)

func main() {
	var port, dataFile string
	flag.StringVar(&port, "port", "", "Web server port (default: 3000 or PORT env var)")
	flag.StringVar(&dataFile, "data", "", "Equity artifact path (default: equity_data.json or EQUITY_OUTPUT env var)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Equityd - Equity Artifact Server\n\n")
		fmt.Fprintf(os.Stderr, "Serves the generated equity artifact over HTTP and pushes updates\n")
		fmt.Fprintf(os.Stderr, "to websocket clients whenever the artifact is regenerated.\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	if port == "" {
		port = os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
	}
	if dataFile == "" {
		dataFile = os.Getenv("EQUITY_OUTPUT")
		if dataFile == "" {
			dataFile = "equity_data.json"
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := server.NewServer(dataFile)
	go s.Watch(ctx, 5*time.Second)

	httpServer := &http.Server{
		Addr:    ":" + port,
		Handler: s.Router(),
	}

	// Channel to listen for interrupt signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Equity server running on port %s (artifact: %s)", port, dataFile)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-stop
	log.Println("Interrupt received. Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	} else {
		log.Println("Server gracefully stopped")
	}
}
