package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindwell/internal/api"
	"mindwell/internal/assessment"
	"mindwell/internal/assistant"
	"mindwell/internal/auth"
	"mindwell/internal/chat"
	"mindwell/internal/mood"
	"mindwell/internal/therapy"
	"mindwell/internal/users"
	"mindwell/pkg/config"
	"mindwell/pkg/db"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {

	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)

	cfg := config.LoadConfig()

	if err := db.RunMigrations(cfg); err != nil {
		logrus.Fatalf("Ошибка при применении миграций: %v", err)
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logrus.Fatalf("Ошибка при подключении к базе данных: %v", err)
	}
	defer database.Close()

	userRepo := users.NewRepository(database)
	userService := users.NewService(userRepo)

	moodService := mood.NewService(database)
	assessmentService := assessment.NewService(database)

	var documentSource therapy.DocumentSource
	if _, err := os.Stat(cfg.TherapyDocsPath); err == nil {
		documentSource = therapy.NewFileDocumentSource(cfg.TherapyDocsPath)
	} else {
		logrus.Warnf("Файл терапевтических документов %s не найден, используется статический набор", cfg.TherapyDocsPath)
	}
	retriever := therapy.NewRetriever(documentSource)

	var backend assistant.Backend
	switch cfg.AIProvider {
	case "openai":
		backend = assistant.NewOpenAIBackend(cfg.OpenAIKey)
	default:
		backend = assistant.NewGeminiBackend(cfg.GeminiKey)
	}
	logrus.Infof("Выбран провайдер языковой модели: %s", cfg.AIProvider)

	composer := assistant.NewComposer(backend, cfg.AIRequestTimeout)

	chatRepo := chat.NewRepository(database)
	chatService := chat.NewService(chatRepo, moodService, retriever, composer)

	apiHandler := api.NewHandler(
		userService,
		chatService,
		moodService,
		assessmentService,
		cfg.JWTSigningKey,
	)

	mux := http.NewServeMux()

	mux.Handle("/api/auth/register", http.HandlerFunc(apiHandler.RegisterHandler))
	mux.Handle("/api/auth/login", http.HandlerFunc(apiHandler.LoginHandler))

	mux.Handle("/api/send_message", auth.JWTMiddleware(http.HandlerFunc(apiHandler.SendMessageHandler), cfg.JWTSigningKey))
	mux.Handle("/api/feedback", auth.JWTMiddleware(http.HandlerFunc(apiHandler.FeedbackHandler), cfg.JWTSigningKey))
	mux.Handle("/api/chat_history", auth.JWTMiddleware(http.HandlerFunc(apiHandler.ChatHistoryHandler), cfg.JWTSigningKey))

	mux.Handle("/api/assessment", auth.JWTMiddleware(http.HandlerFunc(apiHandler.SubmitAssessmentHandler), cfg.JWTSigningKey))
	mux.Handle("/api/assessment_history", auth.JWTMiddleware(http.HandlerFunc(apiHandler.AssessmentHistoryHandler), cfg.JWTSigningKey))

	mux.Handle("/api/mood", auth.JWTMiddleware(http.HandlerFunc(apiHandler.RecordMoodHandler), cfg.JWTSigningKey))
	mux.Handle("/api/mood-history", auth.JWTMiddleware(http.HandlerFunc(apiHandler.MoodHistoryHandler), cfg.JWTSigningKey))

	mux.Handle("/api/dashboard", auth.JWTMiddleware(http.HandlerFunc(apiHandler.DashboardHandler), cfg.JWTSigningKey))
	mux.Handle("/api/users/me", auth.JWTMiddleware(http.HandlerFunc(apiHandler.ProfileHandler), cfg.JWTSigningKey))

	server := &http.Server{
		Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
		Handler: cors.AllowAll().Handler(mux),
	}

	go func() {
		logrus.Infof("Сервер запущен на порту %s", cfg.ServerPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Ошибка при запуске сервера: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Завершение работы сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Fatalf("Ошибка при остановке сервера: %v", err)
	}

	logrus.Info("Сервер остановлен")
}
