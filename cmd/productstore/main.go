// Command productstore is the Lambda entrypoint for the product table
// handler. It serves CRUD calls from API Gateway and scheduled backup
// triggers from EventBridge.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/example/productstore/internal/config"
	"github.com/example/productstore/internal/handler"
	"github.com/example/productstore/internal/productdb"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("configuration error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Error("failed to load AWS config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store := productdb.New(&awsCfg, cfg.TableName)
	if err := store.Connect(); err != nil {
		log.Error("failed to connect to DynamoDB", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := store.Init(context.Background(), cfg.SkipSchemaValidation); err != nil {
		log.Error("table schema validation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	h := handler.New(store, log)

	lambda.Start(h.Handle)
}
