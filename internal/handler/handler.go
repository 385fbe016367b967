// Package handler routes inbound Lambda events to the product store.
//
// Each invocation is classified by shape: events carrying the EventBridge
// scheduled-trigger marker ("source": "aws.events") run a table backup;
// everything else is treated as an API Gateway proxy request and dispatched
// on its method+path pair. Invocations are stateless and independent.
package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/example/productstore/internal/productdb"
	"github.com/example/productstore/internal/schema"
)

// scheduledSource marks an invocation as an EventBridge scheduled trigger.
const scheduledSource = "aws.events"

// Store is the product store surface the router dispatches to. It is
// implemented by [productdb.Client].
type Store interface {
	ListProducts(ctx context.Context, limit int32, startToken string) (*productdb.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*productdb.Product, error)
	AddProduct(ctx context.Context, in *schema.ProductInput) (string, error)
	UpdateProduct(ctx context.Context, in *schema.UpdateInput) (string, error)
	DeleteProduct(ctx context.Context, id string) error
	CreateBackup(ctx context.Context) (*productdb.BackupDetails, error)
}

// Handler dispatches Lambda invocations to a [Store]. Create one with
// [New]; it is safe for concurrent use.
type Handler struct {
	store Store
	log   *slog.Logger
}

// New creates a Handler backed by store. A nil logger falls back to
// [slog.Default].
func New(store Store, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		store: store,
		log:   log,
	}
}

// inboundEvent is the union of the two event shapes the handler consumes:
// the EventBridge scheduled-trigger envelope (source) and the API Gateway
// proxy request envelope (method, path, query parameters, body).
type inboundEvent struct {
	Source                string            `json:"source"`
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Body                  string            `json:"body"`
}

// Handle is the Lambda entrypoint. Scheduled triggers run a backup; API
// calls are dispatched by method and path. Unrecognised method/path pairs
// yield 400; any error raised while executing an action (validation,
// not-found, store failures) yields 500 with the error text in the body.
func (h *Handler) Handle(ctx context.Context, raw json.RawMessage) (events.APIGatewayProxyResponse, error) {
	var event inboundEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return h.errorResponse(fmt.Errorf("failed to parse event: %w", err)), nil
	}

	if event.Source == scheduledSource {
		return h.handleScheduled(ctx), nil
	}

	return h.handleAPICall(ctx, &event), nil
}

func (h *Handler) handleScheduled(ctx context.Context) events.APIGatewayProxyResponse {
	h.log.Info("scheduled trigger received, creating backup")

	details, err := h.store.CreateBackup(ctx)
	if err != nil {
		return h.errorResponse(err)
	}

	return jsonResponse(200, map[string]any{
		"message":        "Backup created",
		"backup_details": details,
	})
}

func (h *Handler) handleAPICall(ctx context.Context, event *inboundEvent) events.APIGatewayProxyResponse {
	h.log.Debug("API call received",
		slog.String("method", event.HTTPMethod),
		slog.String("path", event.Path),
	)

	switch event.HTTPMethod + " " + event.Path {
	case "GET /getProducts":
		return h.getProducts(ctx, event)
	case "GET /getProduct":
		return h.getProduct(ctx, event)
	case "POST /addProduct":
		return h.addProduct(ctx, event)
	case "PUT /updateProduct":
		return h.updateProduct(ctx, event)
	case "DELETE /deleteProduct":
		return h.deleteProduct(ctx, event)
	default:
		return jsonResponse(400, map[string]any{"message": "Bad request"})
	}
}

func (h *Handler) getProducts(ctx context.Context, event *inboundEvent) events.APIGatewayProxyResponse {
	var limit int32

	if raw, ok := event.QueryStringParameters["limit"]; ok {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 {
			return h.errorResponse(fmt.Errorf("invalid limit parameter: %q", raw))
		}

		limit = int32(parsed)
	}

	page, err := h.store.ListProducts(ctx, limit, event.QueryStringParameters["start_key"])
	if err != nil {
		return h.errorResponse(err)
	}

	return jsonResponse(200, page)
}

func (h *Handler) getProduct(ctx context.Context, event *inboundEvent) events.APIGatewayProxyResponse {
	id := event.QueryStringParameters[schema.FieldProductID]
	if id == "" {
		return h.errorResponse(fmt.Errorf("%s query parameter is required", schema.FieldProductID))
	}

	product, err := h.store.GetProduct(ctx, id)
	if err != nil {
		return h.errorResponse(err)
	}

	return jsonResponse(200, product)
}

func (h *Handler) addProduct(ctx context.Context, event *inboundEvent) events.APIGatewayProxyResponse {
	payload, err := parseBody(event.Body)
	if err != nil {
		return h.errorResponse(err)
	}

	in, err := schema.ValidateCreate(payload)
	if err != nil {
		return h.errorResponse(err)
	}

	id, err := h.store.AddProduct(ctx, in)
	if err != nil {
		return h.errorResponse(err)
	}

	return jsonResponse(201, map[string]any{schema.FieldProductID: id})
}

func (h *Handler) updateProduct(ctx context.Context, event *inboundEvent) events.APIGatewayProxyResponse {
	payload, err := parseBody(event.Body)
	if err != nil {
		return h.errorResponse(err)
	}

	in, err := schema.ValidateUpdate(payload)
	if err != nil {
		return h.errorResponse(err)
	}

	if _, err := h.store.UpdateProduct(ctx, in); err != nil {
		return h.errorResponse(err)
	}

	return jsonResponse(200, map[string]any{"message": "Product updated"})
}

func (h *Handler) deleteProduct(ctx context.Context, event *inboundEvent) events.APIGatewayProxyResponse {
	id := event.QueryStringParameters[schema.FieldProductID]
	if id == "" {
		return h.errorResponse(fmt.Errorf("%s query parameter is required", schema.FieldProductID))
	}

	if err := h.store.DeleteProduct(ctx, id); err != nil {
		return h.errorResponse(err)
	}

	return jsonResponse(200, map[string]any{"message": "Product deleted"})
}

func parseBody(body string) (map[string]any, error) {
	payload := make(map[string]any)
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse request body: %w", err)
	}

	return payload, nil
}
