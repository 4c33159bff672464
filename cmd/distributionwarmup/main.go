package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/FlintbyyS/voteforlunch/internal/adapters/cache/memory"
	rediscache "github.com/FlintbyyS/voteforlunch/internal/adapters/cache/redis"
	"github.com/FlintbyyS/voteforlunch/internal/adapters/clock"
	"github.com/FlintbyyS/voteforlunch/internal/adapters/repository/postgres"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
	"github.com/FlintbyyS/voteforlunch/internal/core/services"
)

// Precomputes the vote distribution cache so the first distribution
// request of the day does not pay for the aggregation query. Meant to
// run as a scheduled job shortly after the vote cutoff.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dateFlag string
	var days int
	flag.StringVar(&dateFlag, "date", "", "First date to warm (YYYY-MM-DD), defaults to today")
	flag.IntVar(&days, "days", 1, "Number of consecutive dates to warm, counting backwards")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
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
		// Warming an in-process cache from a one-shot job has no effect.
		log.Println("REDIS_ADDR not set, warming an in-process cache only")
		cache = memory.NewDistributionCache()
	}

	sysClock := clock.NewSystemClock()

	start := sysClock.Today()
	if dateFlag != "" {
		start, err = time.Parse("2006-01-02", dateFlag)
		if err != nil {
			log.Fatalf("Invalid -date value: %v", err)
		}
	}

	var dates []time.Time
	for i := 0; i < days; i++ {
		dates = append(dates, start.AddDate(0, 0, -i))
	}

	timeConstraint, err := services.ParseTimeOfDay(getEnv("VOTE_TIME_CONSTRAINT", "11:00"))
	if err != nil {
		log.Fatal(err)
	}

	voteRepo := postgres.NewVoteRepository(db)
	restaurantRepo := postgres.NewRestaurantRepository(db)
	userRepo := postgres.NewUserRepository(db)
	voteService := services.NewVoteService(voteRepo, restaurantRepo, userRepo, cache, sysClock, timeConstraint)
	warmupService := services.NewWarmupService(voteService)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting distribution warmup job...")

	if err := warmupService.WarmDistribution(ctx, dates); err != nil {
		log.Fatalf("Error warming distribution: %v", err)
	}

	log.Println("Distribution warmup completed successfully.")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
