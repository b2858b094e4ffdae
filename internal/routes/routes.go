package routes

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	appmiddleware "github.com/hellospa/backend/internal/middleware"
)

// GreetingData is the fixed payload for the hello endpoint.
type GreetingData struct {
	Message  string `json:"message" doc:"Greeting message" example:"Hello World from Google Cloud Run!"`
	Backend  string `json:"backend" doc:"Backend stack" example:"Go + Huma"`
	Frontend string `json:"frontend" doc:"Frontend stack" example:"React + TypeScript + Vite"`
}

// GreetingOutput is the response wrapper for the hello endpoint.
type GreetingOutput struct {
	Body GreetingData
}

// HealthData is the payload for the health endpoint.
type HealthData struct {
	Status string `json:"status" doc:"Service status" example:"healthy"`
}

// HealthOutput is the response wrapper for the health endpoint.
type HealthOutput struct {
	Body HealthData
}

// Register wires all API routes into the provided huma router.
func Register(api huma.API) {
	registerHello(api)
	registerHealth(api)
}

func registerHello(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-hello",
		Method:      http.MethodGet,
		Path:        "/api/hello",
		Summary:     "Hello message",
	}, func(ctx context.Context, _ *struct{}) (*GreetingOutput, error) {
		appmiddleware.LogInfo(ctx, "hello requested")
		return &GreetingOutput{Body: GreetingData{
			Message:  "Hello World from Google Cloud Run!",
			Backend:  "Go + Huma",
			Frontend: "React + TypeScript + Vite",
		}}, nil
	})
}

func registerHealth(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-health",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Description: "Liveness probe endpoint for Cloud Run.",
	}, func(_ context.Context, _ *struct{}) (*HealthOutput, error) {
		return &HealthOutput{Body: HealthData{Status: "healthy"}}, nil
	})
}
