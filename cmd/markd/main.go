package main

import (
	"log"

	"github.com/BalajiAXG/BookMark-Repo/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ markd failed to start: %v", err)
	}
}
