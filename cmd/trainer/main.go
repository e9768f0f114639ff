package main

import (
	"context"
	"flag"
	"log"

	"housing-price-service/internal"
)

func main() {
	dataPath := flag.String("data", "", "path to the historical sales CSV (defaults to TRAINING_DATA)")
	flag.Parse()

	trainer, err := internal.NewTrainerApp()
	if err != nil {
		log.Fatalf("Failed to initialize trainer: %v", err)
	}

	if err := trainer.Run(context.Background(), *dataPath); err != nil {
		log.Fatalf("Training failed: %v", err)
	}
}
