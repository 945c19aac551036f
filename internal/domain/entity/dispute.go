package entity

import (
	"time"
)

type DisputeStatus string

const (
	DisputeOpen      DisputeStatus = "open"
	DisputeEscalated DisputeStatus = "escalated_to_admin"
)

type Dispute struct {
	ID        string `json:"id" firestore:"id"`
	OrderID   string `json:"order_id" firestore:"orderId"`
	ListingID string `json:"listing_id" firestore:"listingId"`
	BuyerID   string `json:"buyer_id" firestore:"buyerId"`
	SellerID  string `json:"seller_id" firestore:"sellerId"`

	Reason      string `json:"reason" firestore:"reason"` // not_received, not_as_described, damaged, counterfeit, other
	Description string `json:"description" firestore:"description"`

	// Evidence image URLs, all uploaded before the dispute document exists.
	Evidence []string `json:"evidence" firestore:"evidence"`

	Status           DisputeStatus `json:"status" firestore:"status"`
	ProposedSolution string        `json:"proposed_solution,omitempty" firestore:"proposedSolution,omitempty"`

	CreatedAt   time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time  `json:"updated_at" firestore:"updatedAt"`
	EscalatedAt *time.Time `json:"escalated_at,omitempty" firestore:"escalatedAt,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty" firestore:"resolvedAt,omitempty"`
	Resolution  string     `json:"resolution,omitempty" firestore:"resolution,omitempty"` // refund, dismissed
}
