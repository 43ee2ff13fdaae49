package models

import "time"

// WebhookEvent is the payload Pathao posts to a merchant's webhook URL
// when a consignment changes state.
//
// The set of event names is owned by Pathao and open-ended; EventName is
// therefore kept as a plain string rather than an enum.
type WebhookEvent struct {
	// ConsignmentID identifies the parcel the event refers to.
	ConsignmentID string `json:"consignment_id"`

	// MerchantOrderID is the merchant's own order reference, if one was
	// supplied when the order was placed.
	MerchantOrderID string `json:"merchant_order_id,omitempty"`

	// EventName is the state transition, e.g. "order.created",
	// "order.pickup-requested", "order.delivered".
	EventName string `json:"event"`

	// StoreID is the pickup store the parcel belongs to.
	StoreID int `json:"store_id,omitempty"`

	// Timestamp is when the transition happened on Pathao's side.
	Timestamp time.Time `json:"updated_at"`

	// Reason carries additional detail for failure-type events
	// (e.g. delivery failed), empty otherwise.
	Reason string `json:"reason,omitempty"`
}
