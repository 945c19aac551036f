package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesCode(t *testing.T) {
	err := ListingReserved(nil)

	assert.True(t, Is(err, "LISTING_RESERVED"))
	assert.False(t, Is(err, "LISTING_SOLD"))
	assert.False(t, Is(fmt.Errorf("plain error"), "LISTING_RESERVED"))
	assert.False(t, Is(nil, "LISTING_RESERVED"))
}

func TestDomainErrorStatuses(t *testing.T) {
	assert.Equal(t, http.StatusConflict, ListingSold(nil).Status)
	assert.Equal(t, http.StatusConflict, ListingReserved(nil).Status)
	assert.Equal(t, http.StatusConflict, InvalidStateTransition("shipped", "pending_payment").Status)
	assert.Equal(t, http.StatusConflict, AlreadyReviewed().Status)
	assert.Equal(t, http.StatusBadRequest, InvalidRating().Status)
	assert.Equal(t, http.StatusBadGateway, UploadFailed(fmt.Errorf("boom")).Status)
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("bucket unreachable")
	err := UploadFailed(inner)

	assert.Equal(t, inner, err.Unwrap())
}
