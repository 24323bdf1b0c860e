package main

import (
	"log"
	"log/slog"
	"os"

	"finbrief/internal/brief"
	"finbrief/internal/handler"
	"finbrief/internal/registry"
	"finbrief/internal/voice"
	"finbrief/pkg/agentcall"
	"finbrief/pkg/agents"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	reg, err := registry.Load(os.Getenv("FINBRIEF_CONFIG"))
	if err != nil {
		log.Fatalf("error loading service registry: %v", err)
	}

	// Unknown names here are wiring mistakes; fail before serving a
	// single request rather than per-request.
	resolve := func(service, endpoint string) agentcall.Target {
		target, err := reg.Resolve(service, endpoint)
		if err != nil {
			log.Fatalf("error resolving %s/%s: %v", service, endpoint, err)
		}
		return target
	}

	client := agentcall.New()

	portfolio := agents.NewPortfolioAgent(client, resolve("api", "exposure"), resolve("api", "earnings"))
	news := agents.NewNewsAgent(client, resolve("scraper", "news"))
	retriever := agents.NewRetrieverAgent(client, resolve("retriever", "query"))
	summarizer := agents.NewSummarizerAgent(client, resolve("llm", "brief"))
	speech := agents.NewVoiceAgent(client, resolve("voice", "stt"), resolve("voice", "tts"))

	composer := brief.NewComposer(portfolio, news, retriever, summarizer)
	pipeline := voice.NewPipeline(speech, speech, composer)

	briefHandler := handler.NewBriefHandler(composer)
	voiceHandler := handler.NewVoiceHandler(pipeline)

	r := gin.Default()

	allowedOrigins := reg.Server.AllowedOrigins

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))
	r.Use(handler.RequestLogger())

	r.POST("/brief", briefHandler.GenerateBrief)
	r.POST("/voice-brief", voiceHandler.GenerateVoiceBrief)
	r.GET("/health", briefHandler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	err = r.Run(reg.Server.Address)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
