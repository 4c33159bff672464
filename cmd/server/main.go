package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/FlintbyyS/voteforlunch/internal/adapters/cache/memory"
	rediscache "github.com/FlintbyyS/voteforlunch/internal/adapters/cache/redis"
	"github.com/FlintbyyS/voteforlunch/internal/adapters/clock"
	"github.com/FlintbyyS/voteforlunch/internal/adapters/handler/http"
	"github.com/FlintbyyS/voteforlunch/internal/adapters/oauth/google"
	"github.com/FlintbyyS/voteforlunch/internal/adapters/repository/postgres"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
	"github.com/FlintbyyS/voteforlunch/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	timeConstraint, err := services.ParseTimeOfDay(getEnv("VOTE_TIME_CONSTRAINT", "11:00"))
	if err != nil {
		log.Fatal(err)
	}

	var cache ports.DistributionCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		client, err := rediscache.NewClient(addr)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		cache = rediscache.NewDistributionCache(client)
	} else {
		log.Println("REDIS_ADDR not set, using in-process distribution cache")
		cache = memory.NewDistributionCache()
	}

	userRepo := postgres.NewUserRepository(db)
	authRepo := postgres.NewAuthRepository(db)
	restaurantRepo := postgres.NewRestaurantRepository(db)
	dishRepo := postgres.NewDishRepository(db)
	menuRepo := postgres.NewMenuRepository(db)
	voteRepo := postgres.NewVoteRepository(db)

	authService := services.NewAuthService(userRepo, authRepo, google.NewVerifier(), os.Getenv("JWT_SECRET"), os.Getenv("GOOGLE_CLIENT_ID"))
	userService := services.NewUserService(userRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo)
	dishService := services.NewDishService(dishRepo)
	menuService := services.NewMenuService(menuRepo, restaurantRepo)
	voteService := services.NewVoteService(voteRepo, restaurantRepo, userRepo, cache, clock.NewSystemClock(), timeConstraint)

	handler := http.NewHandler(
		http.NewAuthMiddleware(authService),
		http.NewAuthHandler(authService, getEnv("AUTH_REDIRECT_URL", "/"), os.Getenv("COOKIE_DOMAIN"), stdhttp.SameSiteLaxMode),
		http.NewUserHandler(userService),
		http.NewRestaurantHandler(restaurantService),
		http.NewDishHandler(dishService),
		http.NewMenuHandler(menuService),
		http.NewVoteHandler(voteService),
	)

	server := &stdhttp.Server{Addr: "0.0.0.0:" + getEnv("PORT", "8080"), Handler: handler}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
