package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTicketPurchase(t *testing.T) {
	before := testutil.ToFloat64(ticketPurchases.WithLabelValues("sold_out"))
	TicketPurchase("sold_out")
	assert.Equal(t, before+1, testutil.ToFloat64(ticketPurchases.WithLabelValues("sold_out")))
}

func TestObserveRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404"))
	ObserveRequest("", "GET", 404, 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("unmatched", "GET", "404")))
}
