package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/richardbizik/sendevents/internal/config"
	"github.com/richardbizik/sendevents/internal/kafka"
	"github.com/twmb/franz-go/pkg/kgo"
)

// DefaultMessage is published when the request has no body.
const DefaultMessage = "Hello EventHub!"

type SendEventsResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	EventData string `json:"eventData"`
}

// Connection is the part of a broker connection the handler relies on.
type Connection interface {
	CreateBatch() *kafka.Batch
	Send(ctx context.Context, batch *kafka.Batch) error
	Close()
}

// ConnectFunc opens a connection for a single request.
type ConnectFunc func(conf config.EventHubConfig) (Connection, error)

// KafkaConnector connects through the event hub's Kafka endpoint.
func KafkaConnector(opts ...kgo.Opt) ConnectFunc {
	return func(conf config.EventHubConfig) (Connection, error) {
		conn, err := kafka.Connect(conf, opts...)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// SendEventsHandler publishes the request body, or DefaultMessage when the
// body is empty, as a single event.
func SendEventsHandler(conf config.EventHubConfig, connect ConnectFunc) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := slog.With("request_id", middleware.GetReqID(ctx))
		logger.InfoContext(ctx, "HTTP trigger function processed a request.", "method", r.Method)

		if err := conf.Validate(); err != nil {
			kind := kindOf(err)
			if kind == ConfigurationMissing {
				http.Error(w, err.Error(), kind.StatusCode())
				return
			}
			logger.ErrorContext(ctx, fmt.Sprintf("Error sending message to EventHub: %s", err), "kind", kind)
			w.WriteHeader(kind.StatusCode())
			return
		}

		message, err := sendEvent(ctx, conf, connect, r.Body)
		if err != nil {
			kind := kindOf(err)
			logger.ErrorContext(ctx, fmt.Sprintf("Error sending message to EventHub: %s", err), "kind", kind)
			w.WriteHeader(kind.StatusCode())
			return
		}

		logger.InfoContext(ctx, fmt.Sprintf("Successfully sent message to EventHub: %s", message))
		writeJSON(w, http.StatusOK, SendEventsResponse{
			Status:    "success",
			Message:   "Event sent to EventHub successfully",
			EventData: message,
		})
	}
}

func sendEvent(ctx context.Context, conf config.EventHubConfig, connect ConnectFunc, body io.Reader) (string, error) {
	conn, err := connect(conf)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	// One byte past the budget is enough for TryAdd to reject the event.
	data, err := io.ReadAll(io.LimitReader(body, int64(conf.MaxBatchBytes)+1))
	if err != nil {
		return "", fmt.Errorf("unable to read request body: %w", err)
	}
	message := string(data)
	if message == "" {
		message = DefaultMessage
	}

	batch := conn.CreateBatch()
	if !batch.TryAdd(kafka.NewRecord(message)) {
		return "", kafka.ErrMessageTooLarge
	}
	if err := conn.Send(ctx, batch); err != nil {
		return "", err
	}
	return message, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Error(fmt.Sprintf("unable to encode response: %v", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(payload)
}
