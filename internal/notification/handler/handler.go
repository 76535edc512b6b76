// Package handler exposes the webhook ingestion endpoint. It parses the data
// center from the path, verifies the provider's event signature with that
// region's signing secret, and delegates to the notification pipeline.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"idrelay/internal/datacenter"
	"idrelay/internal/notification/service"
	"idrelay/internal/secrets"
	dErrors "idrelay/pkg/domain-errors"
	"idrelay/pkg/platform/httputil"
	"idrelay/pkg/platform/sentinel"
	"idrelay/pkg/requestcontext"
)

// SignatureHeader carries the provider's HS256 JWT over the event, signed with
// the data center's signing secret.
const SignatureHeader = "X-Idp-Signature"

// Pipeline is the notification processing interface the handler depends on.
type Pipeline interface {
	Process(ctx context.Context, in service.InboundEvent) (*service.Result, error)
}

// Handler wires the webhook endpoint to the pipeline.
type Handler struct {
	pipeline Pipeline
	secrets  secrets.Store
	logger   *slog.Logger
}

// New constructs a webhook handler with its dependencies.
func New(pipeline Pipeline, secretStore secrets.Store, logger *slog.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		secrets:  secretStore,
		logger:   logger,
	}
}

// Register mounts the webhook endpoint on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/webhook/{dc}", h.HandleEvent)
}

// HandleEvent handles POST /webhook/{dc} requests.
func (h *Handler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	dc, err := datacenter.Parse(chi.URLParam(r, "dc"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid data center"))
		return
	}

	if err := h.verifySignature(ctx, dc, r.Header.Get(SignatureHeader)); err != nil {
		h.logger.WarnContext(ctx, "webhook signature rejected",
			"request_id", requestID,
			"data_center", dc.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.Decode[webhookRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.pipeline.Process(ctx, req.toInbound(dc))
	if err != nil {
		h.logger.ErrorContext(ctx, "event processing failed",
			"request_id", requestID,
			"event_name", req.EventName,
			"data_center", dc.String(),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusAccepted, webhookResponse{
		Status: string(result.Status),
		Kind:   string(result.Kind),
	})
}

// verifySignature checks the provider's HS256 JWT against the data center's
// signing secret. The secret is fetched per request and never cached.
func (h *Handler) verifySignature(ctx context.Context, dc datacenter.DataCenter, signature string) error {
	if signature == "" {
		return dErrors.New(dErrors.CodeUnauthorized, "missing event signature")
	}

	name, err := datacenter.SecretName(dc, datacenter.SecretSigning)
	if err != nil {
		// Unregistered pair here means broken wiring, not a bad request.
		h.logger.ErrorContext(ctx, "signing secret pair not registered",
			"data_center", dc.String(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "signing secret not registered")
	}

	secret, err := h.secrets.Get(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "signing secret unavailable")
		}
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "secret store unreachable")
	}

	_, err = jwt.Parse(signature, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnauthorized, "invalid event signature")
	}
	return nil
}
