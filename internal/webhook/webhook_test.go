package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/it-Portal2/bidchemz-logistics-sub001/internal/logger"
)

func newTestSender(t *testing.T) *Sender {
	t.Helper()
	s, err := NewSender(2*time.Second, prometheus.NewRegistry(), logger.Discard())
	require.NoError(t, err)
	return s
}

func TestSender_Send(t *testing.T) {
	const secret = "partner-secret"

	var gotBody []byte
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeader = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := newTestSender(t)
	err := s.Send(context.Background(), Endpoint{URL: srv.URL, Secret: secret}, EventOfferAccepted, map[string]string{"offer_id": "o-1"})
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotHeader.Get("Content-Type"))
	assert.Equal(t, string(EventOfferAccepted), gotHeader.Get(HeaderEvent))
	assert.NotEmpty(t, gotHeader.Get(HeaderDelivery))
	assert.True(t, VerifySignature(gotBody, gotHeader.Get(HeaderSignature), secret))

	var env Envelope
	require.NoError(t, json.Unmarshal(gotBody, &env))
	assert.Equal(t, EventOfferAccepted, env.Event)
	assert.Equal(t, gotHeader.Get(HeaderDelivery), env.ID)
	assert.Equal(t, map[string]any{"offer_id": "o-1"}, env.Data)

	assert.Equal(t, 1.0, testutil.ToFloat64(s.deliveries.WithLabelValues(string(EventOfferAccepted), "delivered")))
}

func TestSender_SendRejected(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := newTestSender(t)
	err := s.Send(context.Background(), Endpoint{URL: srv.URL, Secret: "x"}, EventShipmentUpdated, nil)

	assert.Error(t, err)
	assert.Equal(t, int32(1), hits.Load(), "exactly one attempt")
	assert.Equal(t, 1.0, testutil.ToFloat64(s.deliveries.WithLabelValues(string(EventShipmentUpdated), "rejected")))
}

func TestSender_SendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	s := newTestSender(t)
	err := s.Send(context.Background(), Endpoint{URL: url}, EventQuoteMatched, nil)

	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.deliveries.WithLabelValues(string(EventQuoteMatched), "error")))
}

func TestSender_SendMalformedURL(t *testing.T) {
	var buf bytes.Buffer
	s, err := NewSender(time.Second, prometheus.NewRegistry(), logger.NewWithWriter(&buf, "info"))
	require.NoError(t, err)

	err = s.Send(context.Background(), Endpoint{URL: "://partner.example"}, EventOfferRejected, nil)

	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.deliveries.WithLabelValues(string(EventOfferRejected), "error")))
	assert.Contains(t, buf.String(), `"msg":"webhook_delivery_failed"`)
	assert.Contains(t, buf.String(), `"event":"offer.rejected"`)
}

func TestSignAndVerify(t *testing.T) {
	body := []byte(`{"event":"offer.rejected"}`)
	sig := Sign("s3cret", body)

	assert.True(t, VerifySignature(body, sig, "s3cret"))
	assert.False(t, VerifySignature(body, sig, "other"))
	assert.False(t, VerifySignature([]byte(`{"event":"offer.accepted"}`), sig, "s3cret"))
	assert.False(t, VerifySignature(body, sig[len(signaturePrefix):], "s3cret"))
}

func TestDispatcher_Publish(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	d := NewDispatcher(newTestSender(t), time.Second)
	d.Publish(Endpoint{URL: srv.URL, Secret: "x"}, EventQuoteMatched, nil)
	d.Publish(Endpoint{}, EventQuoteMatched, nil)
	d.Wait()

	assert.Equal(t, int32(1), hits.Load())
}

func TestNewSender_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewSender(time.Second, reg, logger.Discard())
	require.NoError(t, err)

	_, err = NewSender(time.Second, reg, logger.Discard())
	assert.Error(t, err)
}
