package main

import (
	"log"

	"github.com/MrSnakeDoc/ghostdesk/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ ghostdesk failed to start: %v", err)
	}
}
