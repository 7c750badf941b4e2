// Package main - Entry point for the tourcost rate resolution server
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"

	"tourcost/adapters/hcl"
	"tourcost/adapters/storage"
	"tourcost/api"
	"tourcost/core/catalog"
)

const version = "1.0.0"

func main() {
	addr := flag.String("addr", ":8080", "Server address")
	catalogFile := flag.String("catalog", "catalog.hcl", "Path to HCL catalog file")
	dsn := flag.String("dsn", "", "Postgres DSN for rate tables (in-memory catalog when empty)")
	flag.Parse()

	doc, err := hcl.LoadFile(*catalogFile)
	if err != nil {
		log.Fatalf("loading catalog: %v", err)
	}

	var reader catalog.Reader = doc.Store()
	if *dsn != "" {
		store, err := storage.Open(*dsn)
		if err != nil {
			log.Fatalf("opening rate store: %v", err)
		}
		reader = store
	}

	apiServer := api.NewServer(version, reader, doc.Services)

	mux := http.NewServeMux()
	mux.Handle("/api/", http.StripPrefix("/api", apiServer))

	fmt.Printf("tourcost server v%s\n", version)
	fmt.Printf("  API: http://localhost%s/api\n", *addr)
	fmt.Printf("  Services: %d, rate tables: %d\n", len(doc.Services), len(doc.Tables))
	fmt.Println()

	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
