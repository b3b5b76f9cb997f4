package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messenger/internal/config"
	"messenger/internal/handler"
	"messenger/internal/middleware"
	"messenger/internal/service"
	"messenger/internal/storage"
	"messenger/internal/view"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	log.Info("starting application", slog.String("env", cfg.Env), slog.Int("port", cfg.HTTPPort))

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database", slog.Any("err", err))
		os.Exit(1)
	}

	store, err := storage.New(db)
	if err != nil {
		log.Error("failed to initialize storage", slog.Any("err", err))
		os.Exit(1)
	}

	tmplMap, err := view.RetrieveWebTemplates(cfg.TemplateDir)
	if err != nil {
		log.Error("failed to load templates", slog.Any("err", err))
		os.Exit(1)
	}
	renderer := view.NewPageRenderer(tmplMap)

	cookieStore := sessions.NewCookieStore([]byte(cfg.SessionKey))

	authService := service.NewAuthService(log, store.Users(), store.Chats())
	chatService := service.NewChatService(log, store.Users(), store.Chats(), store.Messages())
	messageService := service.NewMessageService(log, store.Chats(), store.Messages())
	userService := service.NewUserService(store.Users())

	authHandler := handler.NewAuthHandler(authService, cookieStore, renderer)
	chatHandler := handler.NewChatHandler(chatService, userService, cookieStore, renderer)
	messageHandler := handler.NewMessageHandler(messageService, cookieStore)
	userHandler := handler.NewUserHandler(userService, cookieStore, renderer)

	r := mux.NewRouter()
	r.Use(middleware.Logging(log))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}).Methods(http.MethodGet)

	r.HandleFunc("/login", authHandler.Login).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/register", authHandler.Register).Methods(http.MethodGet, http.MethodPost)
	r.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodGet)

	r.HandleFunc("/dashboard", middleware.Auth(cookieStore, chatHandler.Dashboard)).Methods(http.MethodGet)
	r.HandleFunc("/create_chat", middleware.Auth(cookieStore, chatHandler.CreateChat)).Methods(http.MethodPost)
	r.HandleFunc("/chat/{id:[0-9]+}", middleware.Auth(cookieStore, chatHandler.ViewChat)).Methods(http.MethodGet)
	r.HandleFunc("/send_message/{id:[0-9]+}", middleware.Auth(cookieStore, messageHandler.SendMessage)).Methods(http.MethodPost)
	r.HandleFunc("/add_to_chat/{id:[0-9]+}", middleware.Auth(cookieStore, chatHandler.AddToChat)).Methods(http.MethodPost)
	r.HandleFunc("/users", middleware.Auth(cookieStore, userHandler.ListUsers)).Methods(http.MethodGet)
	r.HandleFunc("/create_private_chat/{id:[0-9]+}", middleware.Auth(cookieStore, chatHandler.CreatePrivateChat)).Methods(http.MethodGet)

	r.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir))))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", slog.Any("err", err))
			stop()
		}
	}()
	log.Info("server listening", slog.String("addr", srv.Addr))

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.Any("err", err))
	}
	log.Info("server stopped")
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return log
}
