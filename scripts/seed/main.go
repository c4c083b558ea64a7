// Seeds the model registry and optionally writes the default artifact to a YAML file.
// Usage: go run scripts/seed/main.go [-artifact path/to/model.yaml]
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/blaisecz/bedtime-advisor/internal/config"
	"github.com/blaisecz/bedtime-advisor/internal/model"
	"github.com/blaisecz/bedtime-advisor/internal/seed"
)

func main() {
	artifactPath := flag.String("artifact", "", "also write the default linear model to this YAML file")
	flag.Parse()

	if *artifactPath != "" {
		if err := model.WriteArtifact(*artifactPath, model.DefaultArtifact()); err != nil {
			log.Fatalf("Failed to write artifact: %v", err)
		}
		log.Printf("Wrote default artifact to %s", *artifactPath)
	}

	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("\nSeeded models:")
	for _, m := range seed.Models() {
		fmt.Printf("  %s (active=%v)\n", m.VersionLabel(), m.Active)
	}
}
