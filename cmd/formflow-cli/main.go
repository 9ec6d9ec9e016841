package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/receipt"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/submission"
)

func main() {
	formPath := flag.String("form", "", "form definition path or URL (JSON or YAML)")
	openapiPath := flag.String("openapi", "", "OpenAPI document to import a form from")
	operation := flag.String("operation", "", "operation ID when importing from OpenAPI")
	endpoint := flag.String("endpoint", "", "submission API base URL (dry run if empty)")
	sendCopy := flag.Bool("send-copy", false, "request an email copy of the submission")
	output := flag.String("output", "", "write the receipt to a file (stdout if empty)")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	form, err := loadForm(ctx, *formPath, *openapiPath, *operation)
	if err != nil {
		log.Fatalf("Failed to load form: %v", err)
	}

	sess := session.New(nil)
	filler := tui.NewFiller()
	if err := filler.Fill(ctx, form, sess); err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(os.Stderr, "aborted")
			os.Exit(1)
		}
		log.Fatalf("Fill failed: %v", err)
	}

	options := []submission.Option{submission.WithLogger(logger)}
	var client *submission.Client
	if *endpoint != "" {
		client, err = submission.NewClient(*endpoint, submission.WithClientLogger(logger))
		if err != nil {
			log.Fatalf("Invalid endpoint: %v", err)
		}
		options = append(options, submission.WithUploader(client))
	}

	entries, err := submission.NewAssembler(options...).Build(ctx, form, sess.Snapshot())
	if err != nil {
		log.Fatalf("Failed to assemble submission: %v", err)
	}

	if client != nil {
		if err := client.Submit(ctx, form.ID, entries, *sendCopy); err != nil {
			log.Fatalf("Failed to submit: %v", err)
		}
	}

	renderer, err := receipt.New()
	if err != nil {
		log.Fatalf("Failed to prepare receipt: %v", err)
	}
	text, err := renderer.Render(form, entries)
	if err != nil {
		log.Fatalf("Failed to render receipt: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, []byte(text), 0o644); err != nil {
			log.Fatalf("Failed to write receipt: %v", err)
		}
		fmt.Printf("Receipt written to %s\n", *output)
	} else {
		fmt.Println(text)
	}

	if form.Settings.ConfirmationMessage != "" {
		fmt.Println(form.Settings.ConfirmationMessage)
	}
}

func loadForm(ctx context.Context, formPath, openapiPath, operation string) (model.Form, error) {
	switch {
	case formPath != "":
		loader := formdef.NewLoader()
		return loader.Load(ctx, parseSource(formPath))
	case openapiPath != "":
		raw, err := os.ReadFile(openapiPath)
		if err != nil {
			return model.Form{}, err
		}
		return openapi.NewImporter().Import(ctx, raw, operation)
	default:
		return model.Form{}, errors.New("either -form or -openapi is required")
	}
}

func parseSource(raw string) formdef.Source {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return formdef.SourceFromURL(raw)
	}
	return formdef.SourceFromFile(raw)
}
