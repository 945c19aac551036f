package entity

import (
	"time"
)

// Review is left by the buyer once an order completes. Immutable after
// creation; the target user's aggregate is recomputed in the same
// transaction that writes it.
type Review struct {
	ID         string    `json:"id" firestore:"id"`
	OrderID    string    `json:"order_id" firestore:"orderId"`
	ReviewerID string    `json:"reviewer_id" firestore:"reviewerId"`
	TargetID   string    `json:"target_id" firestore:"targetId"`
	Rating     int       `json:"rating" firestore:"rating"` // 1-5
	Comment    string    `json:"comment" firestore:"comment"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
