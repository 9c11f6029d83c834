package main

import (
	"fmt"
	"log"
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("ocrkit %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	// Extracted text goes to files; logs stay on stderr.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	if os.Getenv("OCRKIT_LOG_LEVEL") == "debug" {
		log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
		log.Printf("ocrkit v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cli := NewCLI()
	if err := cli.Run(os.Args[1:]); err != nil {
		log.Fatalf("ocrkit: %v", err)
	}
}
