package main

import (
	_ "embed"
	"net/http"
	"os"

	"github.com/tomz197/target-hunter/internal/config"
	"github.com/tomz197/target-hunter/internal/logx"
	"github.com/tomz197/target-hunter/internal/storage"
)

const (
	defaultHost   = "0.0.0.0"
	defaultPort   = "8080"
	defaultDBPath = "/app/data/target-hunter.db"
)

//go:embed index.html
var htmlPage string

func main() {
	_ = config.LoadDotEnv()
	logger := logx.New(os.Stderr, "web")

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	store, err := storage.Open(config.GetEnv("TH_DB_PATH", defaultDBPath))
	if err != nil {
		logger.Fatal("failed to open storage", "err", err)
	}
	defer store.Close()

	addr := host + ":" + port
	logger.Info("Starting web server", "url", "http://"+addr)
	if err := http.ListenAndServe(addr, newHandler(sshHost, store, logger)); err != nil {
		logger.Fatal("server error", "err", err)
	}
}
