// Package main provides the entry point for the p256 toolkit
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Please use one of the following commands:")
	fmt.Println("  go run ./cmd/p256     - Run the P-256 CLI")
	fmt.Println("  go run ./cmd/p256d    - Run the P-256 signing daemon")
	os.Exit(0)
}
