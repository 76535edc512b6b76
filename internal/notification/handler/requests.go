package handler

import (
	"idrelay/internal/datacenter"
	"idrelay/internal/event"
	"idrelay/internal/notification/models"
	"idrelay/internal/notification/service"
)

// webhookRequest is the inbound event envelope posted by the identity
// provider.
type webhookRequest struct {
	EventName     string               `json:"eventName"`
	AccountRecord models.AccountRecord `json:"accountRecord"`
	Context       webhookContext       `json:"context"`
}

// webhookContext carries optional event metadata.
type webhookContext struct {
	Federated bool   `json:"federated,omitempty"`
	Provider  string `json:"provider,omitempty"`
}

func (r webhookRequest) toInbound(dc datacenter.DataCenter) service.InboundEvent {
	return service.InboundEvent{
		EventName:  r.EventName,
		Account:    r.AccountRecord,
		DataCenter: dc,
		Context: event.Context{
			Federated: r.Context.Federated,
			Provider:  r.Context.Provider,
		},
	}
}

// webhookResponse acknowledges a processed event.
type webhookResponse struct {
	Status string `json:"status"`
	Kind   string `json:"kind"`
}
