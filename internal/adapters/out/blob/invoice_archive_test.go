package blob_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"warehouse/internal/adapters/out/blob"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/core/domain/model/kernel"
	"warehouse/internal/core/domain/model/rack"
	"warehouse/internal/core/domain/model/shipment"
	"warehouse/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2025, 9, 28, 10, 0, 0, 0, time.UTC)

func issuedInvoice(t *testing.T) *billing.Invoice {
	t.Helper()
	rackID, err := rack.NewID("A", "", 1)
	require.NoError(t, err)
	barcode, err := shipment.NewBarcode(issuedAt.AddDate(0, 0, -5), 1)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), barcode, shipment.Details{
		Shipper:    "Acme",
		Consignee:  "Globex",
		Weight:     decimal.RequireFromString("5.5"),
		PieceCount: 1,
	}, rackID, issuedAt.AddDate(0, 0, -5))
	require.NoError(t, err)
	require.NoError(t, s.Release(issuedAt))

	pricing, err := billing.NewPricing(billing.DefaultPricingSettings(), issuedAt)
	require.NoError(t, err)
	number, err := billing.NewInvoiceNumber(issuedAt, 7)
	require.NoError(t, err)

	inv, err := billing.NewInvoice(kernel.NewUUID(), number, s, billing.NewCharges(5, s.Weight(), pricing), issuedAt)
	require.NoError(t, err)
	return inv
}

func TestInvoiceKey(t *testing.T) {
	number, err := billing.NewInvoiceNumber(issuedAt, 7)
	require.NoError(t, err)

	assert.Equal(t, "invoices/2025/09/INV20250928000007.json", blob.InvoiceKey(number, issuedAt))
}

func TestInvoiceArchive_MemoryRoundTrip(t *testing.T) {
	ctx := t.Context()
	store := blob.NewMemoryStore()
	archive := blob.NewInvoiceArchive(store)
	inv := issuedInvoice(t)

	require.NoError(t, archive.Archive(ctx, inv))
	require.NoError(t, archive.Archive(ctx, inv))
	assert.Equal(t, []string{"invoices/2025/09/INV20250928000007.json"}, store.Keys("invoices/"))

	doc, err := archive.Load(ctx, inv.Number(), inv.IssuedAt())
	require.NoError(t, err)
	assert.Equal(t, inv.Number().String(), doc.Number)
	assert.True(t, doc.ShipmentID.IsEqual(inv.ShipmentID()))
	assert.True(t, decimal.RequireFromString("18.25").Equal(doc.Total))
	assert.Equal(t, 3, doc.ChargeableDays)
	assert.Equal(t, "A-001", doc.Shipment.RackID)
}

func TestInvoiceArchive_StoreFailureIsBackendUnavailable(t *testing.T) {
	archive := blob.NewInvoiceArchive(failingStore{})

	err := archive.Archive(t.Context(), issuedInvoice(t))

	require.ErrorIs(t, err, errs.ErrBackendUnavailable)
}

func TestMemoryStore_RejectsUnsafeKeys(t *testing.T) {
	store := blob.NewMemoryStore()

	assert.Error(t, store.Put(t.Context(), "", nil, ""))
	assert.Error(t, store.Put(t.Context(), "/abs", nil, ""))
	assert.Error(t, store.Put(t.Context(), "a/../b", nil, ""))

	_, err := store.Get(t.Context(), "missing")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestParseDriver(t *testing.T) {
	d, err := blob.ParseDriver("S3")
	require.NoError(t, err)
	assert.Equal(t, blob.DriverS3, d)

	d, err = blob.ParseDriver("")
	require.NoError(t, err)
	assert.Equal(t, blob.DriverMemory, d)

	_, err = blob.ParseDriver("gcs")
	assert.Error(t, err)
}

func TestS3Store_PutGet(t *testing.T) {
	ctx := t.Context()
	transport := &fakeS3{objects: make(map[string][]byte)}
	store, err := blob.NewS3Store(ctx, blob.S3Config{
		Bucket:          "invoices",
		Endpoint:        "https://s3.test.local",
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
		PathStyle:       true,
		HTTPClient:      &http.Client{Transport: transport},
	})
	require.NoError(t, err)
	assert.Equal(t, blob.DriverS3, store.Driver())

	archive := blob.NewInvoiceArchive(store)
	inv := issuedInvoice(t)
	require.NoError(t, archive.Archive(ctx, inv))

	doc, err := archive.Load(ctx, inv.Number(), inv.IssuedAt())
	require.NoError(t, err)
	assert.Equal(t, "INV20250928000007", doc.Number)

	_, err = store.Get(ctx, "invoices/2025/09/INV20250928999999.json")
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func TestS3Store_RequiresBucket(t *testing.T) {
	_, err := blob.NewS3Store(t.Context(), blob.S3Config{})
	assert.Error(t, err)
}

type failingStore struct{}

func (failingStore) Driver() blob.Driver { return blob.DriverMemory }

func (failingStore) Put(context.Context, string, []byte, string) error {
	return errors.New("connection reset by peer")
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, blob.ErrNotFound
}

// fakeS3 answers path-style PutObject and GetObject requests from a map.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := strings.TrimPrefix(req.URL.Path, "/invoices/")
	switch req.Method {
	case http.MethodPut:
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			body = decodeAWSChunked(body)
		}
		f.objects[key] = body
		return response(http.StatusOK, nil, http.Header{"ETag": {`"etag"`}}), nil
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			return response(http.StatusNotFound,
				[]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`),
				http.Header{"Content-Type": {"application/xml"}}), nil
		}
		return response(http.StatusOK, body, http.Header{
			"Content-Type":   {"application/json"},
			"Content-Length": {strconv.Itoa(len(body))},
		}), nil
	}
	return response(http.StatusNotImplemented, nil, http.Header{}), nil
}

func response(status int, body []byte, header http.Header) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Body:          io.NopCloser(bytes.NewReader(body)),
		Header:        header,
		ContentLength: int64(len(body)),
	}
}

// decodeAWSChunked joins the data chunks of an aws-chunked payload:
// <hex size>[;chunk-signature=...]\r\n<data>\r\n ... 0\r\n<trailers>\r\n\r\n
func decodeAWSChunked(b []byte) []byte {
	var out []byte
	rest := b
	for {
		line, after, ok := bytes.Cut(rest, []byte("\r\n"))
		if !ok {
			return out
		}
		sizeHex, _, _ := bytes.Cut(line, []byte(";"))
		size, err := strconv.ParseInt(string(sizeHex), 16, 64)
		if err != nil || size == 0 || int64(len(after)) < size {
			return out
		}
		out = append(out, after[:size]...)
		rest = bytes.TrimPrefix(after[size:], []byte("\r\n"))
	}
}
