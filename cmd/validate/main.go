package main

import (
	"fmt"
	"os"

	"github.com/jwebster45206/npc-engine/pkg/world"
)

// validate checks world config files before they ship: cross-reference
// violations (unknown activities, categories, tiers, empty custom
// condition ids) are fatal here so they never reach a running engine.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json|world.yaml> [...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		fmt.Printf("Validating %s...\n", filename)
		if _, err := world.LoadFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Println("World file is valid!")
	}
	if failed {
		os.Exit(1)
	}
}
