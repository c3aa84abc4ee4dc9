package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ismailk12/ASK-AI/config"
	"github.com/Ismailk12/ASK-AI/internal/handler"
	"github.com/Ismailk12/ASK-AI/internal/service"
	"github.com/Ismailk12/ASK-AI/internal/store"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Gemini.APIKey == "" {
		log.Fatalf("GEMINI_API_KEY missing in environment")
	}

	var chatStore store.ChatStore
	switch cfg.Store.Backend {
	case "redis":
		redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Address, cfg.Redis.Port)
		redisStore, err := store.NewRedisStore(redisAddr, cfg.Redis.Password, cfg.Redis.Database, cfg.Chat.MaxHistoryTurns)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		chatStore = redisStore
	default:
		chatStore = store.NewMemoryStore(cfg.Chat.MaxHistoryTurns)
	}

	searchClient := service.NewSearchClient(cfg.Search.APIKey, cfg.Search.EngineID)
	if cfg.Search.APIKey == "" || cfg.Search.EngineID == "" {
		log.Printf("[WARN] Search credentials missing, web enrichment disabled")
	}
	geminiClient := service.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)

	chatHandler := handler.NewChatHandler(chatStore, searchClient, geminiClient, cfg.Chat.MaxHistoryTurns)

	r := gin.Default()
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"service":   cfg.ServerName,
			"timestamp": time.Now(),
		})
	})
	chatHandler.Register(r)

	log.Printf("%s listening on port %d", cfg.ServerName, cfg.Port)
	log.Fatal(r.Run(fmt.Sprintf(":%d", cfg.Port)))
}
