// One-shot expiry notification run for an external scheduler (cron). Prints
// the run summary as JSON on stdout.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"license-management-api/config"
	"license-management-api/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	config.InitDB()

	if err := config.MigrateDB(config.DB); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	mailer, err := services.NewMailerFromEnv()
	if err != nil {
		log.Fatal("Failed to configure mailer:", err)
	}

	notifier := services.NewExpiryNotifier(config.DB, mailer,
		services.WithLocation(services.NotifyLocation()))

	summary, err := notifier.Run()
	if err != nil {
		log.Printf("notification run failed: %v", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		log.Fatal("Failed to encode summary:", err)
	}
	fmt.Println(string(out))
}
