package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/clinicops/booking-api/cmd/mainconfig"
	"github.com/clinicops/booking-api/internal/booking"
	appconfig "github.com/clinicops/booking-api/internal/config"
	"github.com/clinicops/booking-api/internal/notify"
	"github.com/clinicops/booking-api/pkg/logging"
)

// handler wires the booking pipeline behind an API Gateway proxy event, the
// deployment shape used when the intake runs as a single Lambda.
type handler struct {
	service     *booking.Service
	corsHeaders map[string]string
	logger      *logging.Logger
}

func newHandler(service *booking.Service, allowedOrigins []string, logger *logging.Logger) *handler {
	origin := "*"
	if len(allowedOrigins) > 0 {
		origin = allowedOrigins[0]
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &handler{
		service: service,
		corsHeaders: map[string]string{
			"Access-Control-Allow-Origin":  origin,
			"Access-Control-Allow-Headers": "Content-Type,Authorization",
			"Access-Control-Allow-Methods": "POST,OPTIONS",
		},
		logger: logger,
	}
}

func (h *handler) handle(ctx context.Context, evt events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if strings.EqualFold(evt.HTTPMethod, http.MethodOptions) {
		return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent, Headers: h.corsHeaders}, nil
	}

	body := evt.Body
	if evt.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return h.respond(http.StatusBadRequest, "Missing request body", ""), nil
		}
		body = string(decoded)
	}
	if strings.TrimSpace(body) == "" {
		return h.respond(http.StatusBadRequest, "Missing request body", ""), nil
	}

	var req booking.Request
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		h.logger.Error("failed to decode booking event", "error", err)
		return h.respond(http.StatusBadRequest, "Missing request body", ""), nil
	}

	result, err := h.service.Book(ctx, &req)
	if err != nil {
		var missing *booking.MissingFieldError
		switch {
		case errors.As(err, &missing):
			return h.respond(http.StatusBadRequest, fmt.Sprintf("Missing field: %s", missing.Field), ""), nil
		case errors.Is(err, booking.ErrDuplicateBooking):
			return h.respond(http.StatusBadRequest, "An appointment with this name already exists", ""), nil
		default:
			h.logger.Error("booking pipeline failed", "error", err)
			return h.respond(http.StatusInternalServerError, "Internal server error", err.Error()), nil
		}
	}

	msg := "Appointment booked successfully and email sent"
	if !result.EmailSent {
		msg = "Appointment booked successfully but confirmation email failed to send"
	}
	return h.respond(http.StatusOK, msg, ""), nil
}

func (h *handler) respond(status int, message, diagnostic string) events.APIGatewayProxyResponse {
	payload := map[string]string{"message": message}
	if diagnostic != "" {
		payload["error"] = diagnostic
	}
	body, _ := json.Marshal(payload)
	headers := map[string]string{"Content-Type": "application/json"}
	for k, v := range h.corsHeaders {
		headers[k] = v
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

func main() {
	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	ctx := context.Background()
	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		panic(err)
	}

	store := booking.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.BookingsTable, logger)

	var sender notify.EmailSender
	if cfg.SESFromEmail != "" {
		sender = notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
	} else {
		logger.Warn("SES_FROM_EMAIL not set, confirmations will not be sent")
		sender = notify.NewStubEmailSender(logger)
	}

	service := booking.NewService(store, notify.NewConfirmer(sender, logger), nil, logger)
	h := newHandler(service, cfg.CORSAllowedOrigins, logger)

	lambda.Start(h.handle)
}
