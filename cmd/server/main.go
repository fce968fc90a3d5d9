package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	coredb "github.com/coredb-io/coredb"
	"github.com/coredb-io/coredb/ps"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	port := flag.Int("port", 8000, "HTTP port to listen on")
	dataDir := flag.String("dataDir", "coredb_data", "Directory for table files (memory if empty)")
	storageMode := flag.String("storageMode", "indexed", "Storage mode: plain or indexed")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("CoreDB SQL Server v%s\n", Version)
		return
	}

	var base *ps.FileManager
	if *dataDir == "" {
		log.Println("Using memory storage")
		base = ps.NewMemoryManager()
	} else {
		log.Printf("Using file storage: %s", *dataDir)
		base = ps.NewFileManager(*dataDir)
	}

	var storage ps.Manager = base
	if strings.ToLower(*storageMode) == "indexed" {
		storage = ps.NewIndexedManager(base)
	}

	var authConfig *AuthConfig
	if secret := os.Getenv("COREDB_JWT_SECRET"); secret != "" {
		log.Println("JWT authentication enabled")
		authConfig = &AuthConfig{
			JWTSecret: secret,
			Issuer:    os.Getenv("COREDB_JWT_ISSUER"),
			Audience:  os.Getenv("COREDB_JWT_AUDIENCE"),
		}
	}

	server := NewServer(coredb.Open(storage), authConfig, defaultLimits)
	if err := server.Start(fmt.Sprintf(":%d", *port)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Printf("║   CoreDB SQL Server v%-16s  ║\n", Version)
	fmt.Println("║   File-backed SQL Database Engine     ║")
	fmt.Println("╚═══════════════════════════════════════╝")
	fmt.Println()
	fmt.Printf("Listening on port %d\n", *port)
	fmt.Println("POST SQL to /api/v1/execute")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down...")
	if err := server.Stop(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
