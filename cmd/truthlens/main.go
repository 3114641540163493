// cmd/truthlens/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	defer RecoverFromPanic("main")

	fmt.Println(AppName + " v" + AppVersion + " starting up...")

	LoadEnv()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := InitLogger(cfg.LogPath, ParseLogLevel(cfg.LogLevel)); err != nil {
		log.Printf("Warning: file logging unavailable: %v", err)
	}
	defer Logger().Close()

	if cfg.LLM.APIKey == "" {
		Logger().Warning("OPENROUTER_API_KEY is not set; verifications will fail until it is configured")
	}

	errs := NewErrorHandler(MaxRecentErrors)
	service := NewVerificationService(
		NewScraper(cfg.UserAgentString),
		NewFactChecker(NewLLMClient(cfg.LLM)),
		errs,
	)

	server, err := NewServer(cfg, service, errs)
	if err != nil {
		Logger().Error("Failed to create server: %v", err)
		os.Exit(1)
	}

	scheduler, err := NewScheduler(server)
	if err != nil {
		Logger().Error("Failed to create scheduler: %v", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.Discord.Enabled() {
		bot, err := NewDiscordBot(cfg.Discord, service)
		if err == nil {
			err = bot.Start()
		}
		if err != nil {
			errs.Handle(err, "discord", "startup")
		} else {
			defer bot.Stop()
		}
	} else {
		Logger().Info("Discord bot disabled (DISCORD_BOT_TOKEN or DISCORD_APP_ID not set)")
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		Logger().Info("Serving %s on http://localhost%s (model %s)", AppName, httpServer.Addr, cfg.LLM.Model)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			Logger().Error("HTTP server failed: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	Logger().Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		Logger().Error("Graceful shutdown failed: %v", err)
	}
}
