package main

import (
	"log"

	"devexchange/internal/app/bootstrap"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	app, err := bootstrap.BuildAPI()
	if err != nil {
		log.Fatalf("devexchange api bootstrap failed: %v", err)
	}
	log.Println("devexchange api starting")
	if err := app.Run(); err != nil {
		log.Fatalf("devexchange api stopped: %v", err)
	}
}
