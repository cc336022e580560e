package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/siucheung0524/ThaiLingo/config/environment"
	v1 "github.com/siucheung0524/ThaiLingo/routes/v1"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using process environment")
	}

	cfg := environment.Load()
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  GEMINI_API_KEY is not set, translation requests will fail until it is configured")
	}

	r := v1.NewRouter(cfg)

	log.Println("🚀 ThaiLingo API running on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited: ", err)
	}
}
