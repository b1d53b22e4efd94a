package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/goliatone/go-deskforms/pkg/fill"
	"github.com/goliatone/go-deskforms/pkg/form"
	"github.com/goliatone/go-deskforms/pkg/servicedesk"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	flags := flag.NewFlagSet(cmd, flag.ExitOnError)
	configPath := flags.String("config", "deskforms.yaml", "profile path (base_url, username, token)")
	portalID := flags.Int("portal", 0, "portal id")
	requestTypeID := flags.Int("request", 0, "request type id")
	fieldName := flags.String("field", "", "field id or label (values command)")
	parentValue := flags.String("parent", "", "parent value to scope a two-level listing")
	if err := flags.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}
	if err := checkCommand(cmd, *fieldName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(2)
	}
	if *portalID == 0 || *requestTypeID == 0 {
		log.Fatal("both -portal and -request are required")
	}

	ctx := context.Background()
	manager, client := loadForm(ctx, *configPath, *portalID, *requestTypeID)

	switch cmd {
	case "fields":
		printFields(manager)
	case "values":
		printValues(manager, *fieldName, *parentValue)
	case "fill":
		filled := runFill(ctx, manager)
		payload, err := filled.Payload()
		if err != nil {
			log.Fatalf("build payload: %v", err)
		}
		fmt.Println(payload)
	case "submit":
		filled := runFill(ctx, manager)
		payload, err := filled.Payload()
		if err != nil {
			log.Fatalf("build payload: %v", err)
		}
		f := manager.Form()
		ok, err := surveyDriver{}.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Create a %q request on portal %s?", f.Name, f.PortalID),
			Default: true,
		})
		if err != nil {
			log.Fatalf("confirm: %v", err)
		}
		if !ok {
			fmt.Println("aborted")
			return
		}
		resp, err := client.CreateRequest(ctx, f.ServiceDeskID, f.RequestTypeID, payload)
		if err != nil {
			log.Fatalf("create request: %v", err)
		}
		fmt.Printf("Created %s (%s)\n", resp.Issue.Key, resp.Issue.Summary)
	}
}

// checkCommand validates the subcommand and its flags before any network
// round trip happens.
func checkCommand(cmd, fieldName string) error {
	switch cmd {
	case "fields", "fill", "submit":
		return nil
	case "values":
		if fieldName == "" {
			return errors.New("-field is required for the values command")
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func loadForm(ctx context.Context, configPath string, portalID, requestTypeID int) (*fill.Manager, *servicedesk.Client) {
	cfg, err := servicedesk.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	client, err := servicedesk.NewClient(cfg)
	if err != nil {
		log.Fatalf("client: %v", err)
	}
	doc, err := client.FetchForm(ctx, portalID, requestTypeID)
	if err != nil {
		log.Fatalf("fetch form: %v", err)
	}
	parsed, err := form.ParseDocument(doc)
	if err != nil {
		log.Fatalf("parse form: %v", err)
	}
	manager, err := fill.NewManager(parsed)
	if err != nil {
		log.Fatalf("manager: %v", err)
	}
	return manager, client
}

func runFill(ctx context.Context, manager *fill.Manager) *fill.Filled {
	answers, err := collectAnswers(ctx, surveyDriver{}, manager.Form())
	if err != nil {
		log.Fatalf("collect answers: %v", err)
	}
	filled, err := manager.Fill(answers)
	if err != nil {
		log.Fatalf("fill: %v", err)
	}
	return filled
}

func printFields(manager *fill.Manager) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTYPE\tREQUIRED\tDESCRIPTION")
	for _, info := range manager.ListFields() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", info.ID, info.Label, info.Type, info.Required, info.Description)
	}
	w.Flush()
}

func printValues(manager *fill.Manager, identifier, parentValue string) {
	values, err := manager.ListFieldValues(identifier, parentValue)
	if err != nil {
		log.Fatalf("list values: %v", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tLABEL")
	for _, value := range values {
		fmt.Fprintf(w, "%s\t%s\n", value.ID, value.Label)
	}
	w.Flush()
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: deskforms <command> [flags]

commands:
  fields  list the fields of a request form
  values  list the selectable values of a field
  fill    fill the form interactively and print the payload
  submit  fill the form interactively and create the request

common flags: -config deskforms.yaml -portal N -request N`)
}
