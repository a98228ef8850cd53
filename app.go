package main

import (
	"context"
	"fmt"
	"os"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	"github.com/elC0mpa/gcp-bill-doctor/service/diagnose"
	"github.com/elC0mpa/gcp-bill-doctor/service/flag"
	gcpbilling "github.com/elC0mpa/gcp-bill-doctor/service/gcp/billing"
	gcpconfig "github.com/elC0mpa/gcp-bill-doctor/service/gcp/config"
	gcpcosts "github.com/elC0mpa/gcp-bill-doctor/service/gcp/costs"
	gcpexport "github.com/elC0mpa/gcp-bill-doctor/service/gcp/export"
	"github.com/elC0mpa/gcp-bill-doctor/service/orchestrator"
	"github.com/elC0mpa/gcp-bill-doctor/utils"
)

func main() {
	utils.DrawBanner()

	flagService := flag.NewService()
	flags, err := flagService.GetParsedFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		flagService.PrintUsage()
		os.Exit(model.ExitUsage)
	}

	if !flags.HasAction() {
		flagService.PrintUsage()
		return
	}

	utils.StartSpinner()

	ctx := context.Background()

	cfgService := gcpconfig.NewService(flags.Project)
	creds, err := cfgService.GetCredentials(ctx)
	if err != nil {
		fail(err)
	}
	projectID := cfgService.ResolveProjectID(creds)

	billingService, err := gcpbilling.NewService(ctx)
	if err != nil {
		fail(err)
	}

	exportService, err := gcpexport.NewService(ctx, projectID)
	if err != nil {
		fail(err)
	}
	defer exportService.Close()

	costService, err := gcpcosts.NewService(ctx, projectID)
	if err != nil {
		fail(err)
	}
	defer costService.Close()

	if flags.Debug {
		debugf := func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "Debug: "+format+"\n", args...)
		}
		exportService.SetDebugLogger(debugf)
		costService.SetDebugLogger(debugf)
	}

	diagnoseService := diagnose.NewService()

	orchestratorService := orchestrator.NewService(billingService, exportService, costService, diagnoseService)

	if err := orchestratorService.Orchestrate(ctx, flags); err != nil {
		fail(err)
	}
}

func fail(err error) {
	utils.StopSpinner()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(model.ExitCode(err))
}
