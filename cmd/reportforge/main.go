// File path: cmd/reportforge/main.go
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/adityakulkarni/reportforge/internal/api"
	"github.com/adityakulkarni/reportforge/internal/common"
	"github.com/adityakulkarni/reportforge/internal/config"
	"github.com/adityakulkarni/reportforge/internal/llm"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("reportforge: .env file not loaded", "error", err)
	} else {
		logger.Info("reportforge: environment loaded from .env")
	}

	addr := flag.String("addr", ":8084", "listen address")
	flag.Parse()

	cfg := config.Load()
	logger.Info("reportforge: startup initiated", "addr", *addr, "model", cfg.Model)

	provider, err := llm.NewOpenAIProvider(llm.OpenAIConfig{
		APIKey:      cfg.OpenAIKey,
		BaseURL:     cfg.OpenAIEndpoint,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		logger.Error("reportforge: provider initialization failed", "error", err)
		fmt.Println("provider error:", err)
		os.Exit(1)
	}
	logger.Info("reportforge: llm provider ready", "provider", provider.Name())

	serverCfg := api.DefaultConfig()
	serverCfg.Model = cfg.Model
	serverCfg.Temperature = cfg.Temperature
	serverCfg.MaxTokens = cfg.MaxTokens

	server, err := api.NewServer(provider, serverCfg)
	if err != nil {
		logger.Error("reportforge: server construction failed", "error", err)
		fmt.Println("server error:", err)
		os.Exit(1)
	}

	logger.Info("reportforge: server listening", "addr", *addr, "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("reportforge: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))
	if err := http.ListenAndServe(*addr, server); err != nil {
		logger.Error("reportforge: server stopped", "error", err)
		fmt.Println("server stopped:", err)
	}
}
