package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/elC0mpa/gcp-bill-doctor/model"
	gcpconfig "github.com/elC0mpa/gcp-bill-doctor/service/gcp/config"
	"github.com/elC0mpa/gcp-bill-doctor/service/provision"
)

func main() {
	setup := flag.Bool("setup", false, "Create the export dataset and walk through Console configuration")
	destroy := flag.Bool("destroy", false, "Print export disabling steps and optionally delete the dataset")
	billingAccount := flag.String("billing-account", os.Getenv("GCP_BILLING_ACCOUNT"), "Billing account ID (required)")
	project := flag.String("project", "", "GCP project for the BigQuery dataset")
	dataset := flag.String("dataset", "billing_export", "BigQuery dataset name")
	location := flag.String("location", "US", "BigQuery dataset location")
	deleteDataset := flag.Bool("delete-dataset", false, "With --destroy, also delete the dataset and its contents")

	flag.Parse()

	if *setup == *destroy {
		fmt.Fprintln(os.Stderr, "Error: exactly one of --setup or --destroy is required")
		flag.Usage()
		os.Exit(model.ExitUsage)
	}
	if *billingAccount == "" {
		fmt.Fprintln(os.Stderr, "Error: --billing-account is required (or set GCP_BILLING_ACCOUNT)")
		flag.Usage()
		os.Exit(model.ExitUsage)
	}

	ctx := context.Background()

	cfgService := gcpconfig.NewService(*project)
	creds, err := cfgService.GetCredentials(ctx)
	if err != nil {
		fail(err)
	}

	projectID := cfgService.ResolveProjectID(creds)
	if projectID == "" {
		fmt.Fprintln(os.Stderr, "Error: could not determine a project ID, pass --project or set GCP_PROJECT_ID")
		os.Exit(model.ExitUsage)
	}

	provisionService, err := provision.NewService(ctx, projectID)
	if err != nil {
		fail(err)
	}
	defer provisionService.Close()

	if *setup {
		err = provisionService.Setup(ctx, *billingAccount, *dataset, *location)
	} else {
		err = provisionService.Destroy(ctx, *billingAccount, *dataset, *deleteDataset)
	}
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(model.ExitCode(err))
}
