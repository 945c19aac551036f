package entity

import (
	"time"
)

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingReserved  ListingStatus = "reserved"
	ListingSold      ListingStatus = "sold"
)

type Listing struct {
	ID          string        `json:"id" firestore:"id"`
	SellerID    string        `json:"seller_id" firestore:"sellerId"`
	Title       string        `json:"title" firestore:"title"`
	Description string        `json:"description" firestore:"description"`
	Price       float64       `json:"price" firestore:"price"`
	Condition   string        `json:"condition" firestore:"condition"` // new, like_new, good, fair, worn
	Category    string        `json:"category" firestore:"category"`
	PostalCode  string        `json:"postal_code" firestore:"postalCode"`
	Images      []string      `json:"images" firestore:"images"`
	Status      ListingStatus `json:"status" firestore:"status"`

	// Set while Status == reserved; a reservation past this instant is void.
	ReservedUntil *time.Time `json:"reserved_until,omitempty" firestore:"reservedUntil,omitempty"`

	IsBoosted bool       `json:"is_boosted" firestore:"isBoosted"`
	BoostType string     `json:"boost_type,omitempty" firestore:"boostType,omitempty"`
	BoostEnds *time.Time `json:"boost_ends,omitempty" firestore:"boostEnds,omitempty"`

	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// ReservationExpired reports whether a reserved listing's window has lapsed.
// Expiry is lazy: nothing flips the document back to available until the next
// write touches it, so every availability check must go through here.
func (l *Listing) ReservationExpired(now time.Time) bool {
	if l.Status != ListingReserved {
		return false
	}
	return l.ReservedUntil == nil || !l.ReservedUntil.After(now)
}

// Reservable reports whether a new reservation may be taken on the listing.
func (l *Listing) Reservable(now time.Time) bool {
	switch l.Status {
	case ListingAvailable:
		return true
	case ListingReserved:
		return l.ReservationExpired(now)
	default:
		return false
	}
}
