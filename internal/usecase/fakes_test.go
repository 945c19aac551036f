package usecase

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"vendora/internal/domain/entity"
	"vendora/internal/domain/service"
	"vendora/pkg/errors"
)

// memStore backs the in-memory repositories. A single mutex plays the role
// of the datastore's serializable transactions: every multi-document
// operation holds it for its whole read-check-write cycle.
type memStore struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	orders   map[string]*entity.Order
	disputes map[string]*entity.Dispute
	reviews  map[string]*entity.Review
	users    map[string]*entity.User
}

func newMemStore() *memStore {
	return &memStore{
		listings: map[string]*entity.Listing{},
		orders:   map[string]*entity.Order{},
		disputes: map[string]*entity.Dispute{},
		reviews:  map[string]*entity.Review{},
		users:    map[string]*entity.User{},
	}
}

func cloneListing(l *entity.Listing) *entity.Listing {
	c := *l
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	return &c
}

func cloneDispute(d *entity.Dispute) *entity.Dispute {
	c := *d
	return &c
}

func cloneReview(r *entity.Review) *entity.Review {
	c := *r
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

type memListingRepo struct {
	store *memStore
}

func (r *memListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	r.store.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *memListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	listing, ok := r.store.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	return cloneListing(listing), nil
}

func (r *memListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.UpdatedAt = time.Now()
	r.store.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *memListingRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.Listing, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Listing
	for _, l := range r.store.listings {
		out = append(out, cloneListing(l))
	}
	return out, int64(len(out)), nil
}

func (r *memListingRepo) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Listing
	for _, l := range r.store.listings {
		if l.SellerID == sellerID {
			out = append(out, cloneListing(l))
		}
	}
	return out, int64(len(out)), nil
}

type memOrderRepo struct {
	store *memStore
}

func (r *memOrderRepo) ReserveForOrder(ctx context.Context, order *entity.Order, window time.Duration) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}

	listing, ok := r.store.listings[order.ListingID]
	if !ok {
		return errors.NotFound("Listing", nil)
	}

	now := time.Now()

	if listing.Status == entity.ListingSold {
		return errors.ListingSold(nil)
	}
	if listing.Status == entity.ListingReserved && !listing.ReservationExpired(now) {
		return errors.ListingReserved(nil)
	}

	if listing.Status == entity.ListingReserved {
		for _, stale := range r.store.orders {
			if stale.ListingID == listing.ID && stale.Status == entity.OrderPendingPayment {
				stale.Status = entity.OrderCancelled
				stale.PaymentStatus = entity.PaymentFailed
				stale.CancellationReason = "reservation expired"
				stale.CancelledAt = &now
				stale.UpdatedAt = now
			}
		}
	}

	reservedUntil := now.Add(window)
	listing.Status = entity.ListingReserved
	listing.ReservedUntil = &reservedUntil
	listing.UpdatedAt = now

	order.SellerID = listing.SellerID
	order.ListingTitle = listing.Title
	order.PricePaid = listing.Price
	if len(listing.Images) > 0 {
		order.ListingImage = listing.Images[0]
	}
	order.Status = entity.OrderPendingPayment
	order.PaymentStatus = entity.PaymentPending
	order.CreatedAt = now
	order.UpdatedAt = now

	r.store.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) ConfirmPayment(ctx context.Context, orderID string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}

	if !entity.CanTransition(order.Status, entity.OrderPaidPendingShipment) {
		return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderPaidPendingShipment))
	}

	listing, ok := r.store.listings[order.ListingID]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}

	now := time.Now()

	if listing.ReservationExpired(now) {
		order.Status = entity.OrderCancelled
		order.PaymentStatus = entity.PaymentFailed
		order.CancellationReason = "reservation expired before payment confirmation"
		order.CancelledAt = &now
		order.UpdatedAt = now
		return nil, errors.InvalidStateTransition(string(entity.OrderPendingPayment), string(entity.OrderPaidPendingShipment))
	}

	order.Status = entity.OrderPaidPendingShipment
	order.PaymentStatus = entity.PaymentPaid
	order.PaidAt = &now
	order.UpdatedAt = now

	listing.Status = entity.ListingSold
	listing.ReservedUntil = nil
	listing.UpdatedAt = now

	return cloneOrder(order), nil
}

func (r *memOrderRepo) CancelReservation(ctx context.Context, orderID, reason string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[orderID]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}

	if order.Status != entity.OrderPendingPayment {
		return nil, errors.InvalidStateTransition(string(order.Status), string(entity.OrderCancelled))
	}

	now := time.Now()

	order.Status = entity.OrderCancelled
	order.PaymentStatus = entity.PaymentFailed
	order.CancellationReason = reason
	order.CancelledAt = &now
	order.UpdatedAt = now

	if listing, ok := r.store.listings[order.ListingID]; ok && listing.Status == entity.ListingReserved {
		listing.Status = entity.ListingAvailable
		listing.ReservedUntil = nil
		listing.UpdatedAt = now
	}

	return cloneOrder(order), nil
}

func (r *memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	order, ok := r.store.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return cloneOrder(order), nil
}

func (r *memOrderRepo) Update(ctx context.Context, order *entity.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.orders[order.ID]; !ok {
		return errors.NotFound("Order", nil)
	}
	order.UpdatedAt = time.Now()
	r.store.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *memOrderRepo) ListByUserID(ctx context.Context, userID string, role string, status string, limit, offset int) ([]*entity.Order, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Order
	for _, o := range r.store.orders {
		if role == "seller" && o.SellerID != userID {
			continue
		}
		if role == "buyer" && o.BuyerID != userID {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, int64(len(out)), nil
}

type memDisputeRepo struct {
	store *memStore
}

func (r *memDisputeRepo) Create(ctx context.Context, dispute *entity.Dispute) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if dispute.ID == "" {
		dispute.ID = uuid.New().String()
	}
	now := time.Now()
	dispute.CreatedAt = now
	dispute.UpdatedAt = now
	r.store.disputes[dispute.ID] = cloneDispute(dispute)
	return nil
}

func (r *memDisputeRepo) GetByID(ctx context.Context, id string) (*entity.Dispute, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	dispute, ok := r.store.disputes[id]
	if !ok {
		return nil, errors.NotFound("Dispute", nil)
	}
	return cloneDispute(dispute), nil
}

func (r *memDisputeRepo) Update(ctx context.Context, dispute *entity.Dispute) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.disputes[dispute.ID]; !ok {
		return errors.NotFound("Dispute", nil)
	}
	dispute.UpdatedAt = time.Now()
	r.store.disputes[dispute.ID] = cloneDispute(dispute)
	return nil
}

func (r *memDisputeRepo) ListByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Dispute, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Dispute
	for _, d := range r.store.disputes {
		if d.BuyerID == userID || d.SellerID == userID {
			out = append(out, cloneDispute(d))
		}
	}
	return out, int64(len(out)), nil
}

type memReviewRepo struct {
	store *memStore
}

func (r *memReviewRepo) CreateWithAggregate(ctx context.Context, review *entity.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}

	order, ok := r.store.orders[review.OrderID]
	if !ok {
		return errors.NotFound("Order", nil)
	}

	if order.BuyerID != review.ReviewerID {
		return errors.Forbidden("Only the buyer can review this order", nil)
	}
	if order.Status != entity.OrderCompleted {
		return errors.BadRequest("Order must be completed before it can be reviewed", nil)
	}
	if order.BuyerReviewLeft {
		return errors.AlreadyReviewed()
	}

	user, ok := r.store.users[review.TargetID]
	if !ok {
		return errors.NotFound("User", nil)
	}

	now := time.Now()
	review.CreatedAt = now

	total := user.Rating * float64(user.ReviewCount)
	user.ReviewCount++
	user.Rating = (total + float64(review.Rating)) / float64(user.ReviewCount)
	user.UpdatedAt = now

	order.BuyerReviewLeft = true
	order.UpdatedAt = now

	r.store.reviews[review.ID] = cloneReview(review)
	return nil
}

func (r *memReviewRepo) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	review, ok := r.store.reviews[id]
	if !ok {
		return nil, errors.NotFound("Review", nil)
	}
	return cloneReview(review), nil
}

func (r *memReviewRepo) ListByTargetID(ctx context.Context, targetID string, limit, offset int) ([]*entity.Review, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.Review
	for _, rv := range r.store.reviews {
		if rv.TargetID == targetID {
			out = append(out, cloneReview(rv))
		}
	}
	return out, int64(len(out)), nil
}

type memUserRepo struct {
	store *memStore
}

func (r *memUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.users[user.ID] = cloneUser(user)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(user), nil
}

func (r *memUserRepo) Update(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[user.ID]; !ok {
		return errors.NotFound("User", nil)
	}
	user.UpdatedAt = time.Now()
	r.store.users[user.ID] = cloneUser(user)
	return nil
}

// fakeUploader records uploads and can be told to fail after a number of
// successful calls.
type fakeUploader struct {
	mu        sync.Mutex
	uploaded  []string
	failAfter int
	calls     int
}

func (u *fakeUploader) UploadFile(ctx context.Context, file io.Reader, fileType, folder string, isPublic bool) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.calls++
	if u.failAfter > 0 && u.calls > u.failAfter {
		return "", fmt.Errorf("upload rejected")
	}
	url := fmt.Sprintf("https://storage.test/%s/file-%d", folder, u.calls)
	u.uploaded = append(u.uploaded, url)
	return url, nil
}

type sentNotification struct {
	Token string
	Title string
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{Token: token, Title: title})
	return nil
}

type fakeGateway struct {
	mu  sync.Mutex
	err error
}

func (g *fakeGateway) CreatePayment(ctx context.Context, orderID string, amount float64) (*service.PaymentIntent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.err != nil {
		return nil, g.err
	}
	return &service.PaymentIntent{
		OrderID:     orderID,
		Amount:      amount,
		RedirectURL: "https://pay.test/" + orderID,
	}, nil
}

func (g *fakeGateway) ParseCallback(ctx context.Context, notification map[string]interface{}) (*service.PaymentNotification, error) {
	return nil, fmt.Errorf("not used in tests")
}

type fakeIdentity struct {
	emails map[string]string
}

func (f *fakeIdentity) GetEmail(ctx context.Context, uid string) (string, error) {
	email, ok := f.emails[uid]
	if !ok {
		return "", errors.NotFound("User", nil)
	}
	return email, nil
}
