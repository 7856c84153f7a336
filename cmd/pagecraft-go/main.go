package main

import (
	"log"

	"github.com/PageCraftHQ/pagecraft-go/internal/application/startup"
)

func main() {
	if err := startup.Initialize(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}
