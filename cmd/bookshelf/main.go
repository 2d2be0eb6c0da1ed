// Command bookshelf serves the users and books HTTP API.
package main

import (
	"log"

	"github.com/patric-chuzhbe/bookshelf/internal/app"
)

func main() {
	theApp, err := app.New()
	if err != nil {
		log.Fatalf("failed to initialize app: %v", err)
	}
	defer theApp.Close()

	if err := theApp.Run(); err != nil {
		theApp.Close()
		log.Fatalf("app run failed: %v", err)
	}
}
