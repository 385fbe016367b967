package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

func jsonResponse(statusCode int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		// The payload types marshalled here cannot fail, but never let a
		// serialization problem escape the response envelope.
		return events.APIGatewayProxyResponse{
			StatusCode: 500,
			Body:       `{"error":"failed to serialize response"}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Body:       string(body),
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// errorResponse flattens every action error to a 500 with the error text in
// the body. Validation and not-found errors stay distinguishable as typed
// errors in code, but the client-facing contract does not differentiate
// them; routing mismatches are the only 400 and are produced directly by
// the dispatch switch.
func (h *Handler) errorResponse(err error) events.APIGatewayProxyResponse {
	h.log.Error("request failed", slog.String("error", err.Error()))

	return jsonResponse(500, map[string]any{"error": err.Error()})
}
