package main

import (
	"flag"
	"log"
	"os"

	"github.com/qs3c/kino_go_server/config"
	"github.com/qs3c/kino_go_server/internal/database"
	"github.com/qs3c/kino_go_server/internal/repository"
	"github.com/qs3c/kino_go_server/internal/service"
)

var dryRun = flag.Bool("dry-run", true, "Dry run mode, don't actually expire subscriptions")

func main() {
	flag.Parse()

	log.Println("Starting subscription expiry sweep...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	// 加载配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 连接数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	subRepo := repository.NewSubscriptionRepository(db)
	subscriptionService := service.NewSubscriptionService(subRepo, nil, nil)

	if *dryRun {
		subs, err := subscriptionService.ListDueSubscriptions()
		if err != nil {
			log.Fatalf("Failed to list due subscriptions: %v", err)
		}

		for _, sub := range subs {
			log.Printf("  - subscription %d (user %d, plan %d, ended %s)",
				sub.ID, sub.UserID, sub.PlanID, sub.EndDate.Format("2006-01-02"))
		}
		log.Printf("Found %d due subscriptions", len(subs))
		log.Println("DRY RUN MODE - No subscriptions were changed")
		log.Println("Run with -dry-run=false to mark them as expired")
		return
	}

	count, err := subscriptionService.ExpireDueSubscriptions()
	if err != nil {
		log.Fatalf("Failed to expire subscriptions: %v", err)
	}
	log.Printf("Expired %d subscriptions", count)
}
