package main

import (
	"fmt"
	"os"

	"github.com/elC0mpa/gcp-bill-doctor/cmd/mcp/tools"
	"github.com/mark3labs/mcp-go/server"
)

func main() {
	cfg := LoadConfig()

	s := server.NewMCPServer(
		"gcp-bill-doctor-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	tools.RegisterBillingTools(s, cfg.ProjectID, cfg.BillingAccount)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
