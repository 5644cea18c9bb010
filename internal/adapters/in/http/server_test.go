package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpapi "warehouse/internal/adapters/in/http"
	"warehouse/internal/adapters/out/memory"
	"warehouse/internal/adapters/out/pricingcache"
	"warehouse/internal/core/application/usecases/commands"
	"warehouse/internal/core/application/usecases/queries"
	"warehouse/internal/core/domain/model/billing"
	"warehouse/internal/pkg/clock"
	"warehouse/internal/pkg/errs"
	"warehouse/internal/pkg/metrics"
	"warehouse/internal/pkg/retry"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var testNow = time.Date(2025, 9, 28, 10, 15, 0, 0, time.UTC)

type MockRackLister struct{ mock.Mock }

func (m *MockRackLister) Handle(ctx context.Context, q queries.ListRacksQuery) ([]queries.RackView, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.RackView), args.Error(1)
}

type MockInvoiceReader struct{ mock.Mock }

func (m *MockInvoiceReader) Handle(ctx context.Context, q queries.GetInvoiceQuery) (queries.InvoiceView, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.InvoiceView), args.Error(1)
}

// ServerTestSuite runs the router against real command handlers on the
// in-memory store; read-side handlers are mocked.
type ServerTestSuite struct {
	suite.Suite
	clock    *clock.Manual
	metrics  *metrics.Metrics
	racks    *MockRackLister
	invoices *MockInvoiceReader
	e        *echo.Echo
}

func (s *ServerTestSuite) SetupTest() {
	s.clock = clock.NewManual(testNow)
	s.metrics = metrics.New()
	s.racks = &MockRackLister{}
	s.invoices = &MockInvoiceReader{}

	uowFactory := memory.NewUnitOfWorkFactory(memory.NewStore())
	pricing, err := billing.NewPricing(billing.DefaultPricingSettings(), testNow)
	s.Require().NoError(err)
	s.Require().NoError(uowFactory.Create().PricingRepository().Save(context.Background(), pricing))

	f := commands.NewFactories(uowFactory)
	policy := retry.DefaultPolicy()
	provider := pricingcache.NewProvider(pricingcache.RepositoryLoader(uowFactory), time.Minute)
	issue := commands.NewIssueInvoiceCommandHandler(f.Invoice, provider, nil, s.clock, policy)

	server := httpapi.NewServer(
		httpapi.Commands{
			CreateRackRange:    commands.NewCreateRackRangeCommandHandler(f.Rack, s.clock, policy),
			UpdateRackCapacity: commands.NewUpdateRackCapacityCommandHandler(f.Rack, s.clock, policy),
			ChangeRackStatus:   commands.NewChangeRackStatusCommandHandler(f.Rack, s.clock, policy),
			DeleteRack:         commands.NewDeleteRackCommandHandler(f.Rack, policy),
			IntakeShipment:     commands.NewIntakeShipmentCommandHandler(f.Shipment, s.clock, policy),
			ReleaseShipment:    commands.NewReleaseShipmentCommandHandler(f.Shipment, issue, s.clock, policy),
			IssueInvoice:       issue,
			UpdatePricing:      commands.NewUpdatePricingCommandHandler(f.Pricing, provider, s.clock, policy),
		},
		httpapi.Queries{
			ListRacks:  s.racks,
			GetInvoice: s.invoices,
		},
		provider,
		s.clock,
		s.metrics,
		nil,
	)

	s.e, err = httpapi.NewRouter(server, httpapi.RouterOptions{
		Metrics:          s.metrics,
		ValidateRequests: true,
	})
	s.Require().NoError(err)
}

func (s *ServerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) decode(rec *httptest.ResponseRecorder, dest any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), dest), rec.Body.String())
}

func (s *ServerTestSuite) seedRacks() {
	rec := s.do(http.MethodPost, "/api/v1/racks/ranges", `{"section":"A","start":1,"end":2,"capacity":1}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	var result httpapi.RackRangeResult
	s.decode(rec, &result)
	s.Equal([]string{"A-001", "A-002"}, result.Created)
	s.Empty(result.Skipped)
}

func (s *ServerTestSuite) intake() (int, map[string]any) {
	rec := s.do(http.MethodPost, "/api/v1/shipments",
		`{"shipper":"Acme","consignee":"Globex","weight":"5.5","pieceCount":2}`)
	var body map[string]any
	s.decode(rec, &body)
	return rec.Code, body
}

func (s *ServerTestSuite) TestIntakeAndRelease() {
	s.seedRacks()

	code, first := s.intake()
	s.Require().Equal(http.StatusCreated, code, first)
	s.Equal("A-001", first["rackId"])
	s.Equal("in", first["status"])
	s.True(strings.HasPrefix(first["barcode"].(string), "WH250928"))
	s.Len(first["pieceIds"], 2)

	code, _ = s.intake()
	s.Require().Equal(http.StatusCreated, code)

	code, refused := s.intake()
	s.Equal(http.StatusConflict, code)
	s.EqualValues(http.StatusConflict, refused["code"])

	s.clock.Advance(5 * 24 * time.Hour)
	rec := s.do(http.MethodPost, "/api/v1/shipments/"+first["id"].(string)+"/release", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var released httpapi.ReleaseResult
	s.decode(rec, &released)
	s.Equal("out", released.Shipment.Status)
	s.Nil(released.InvoiceError)
	s.Require().NotNil(released.Invoice)
	s.True(decimal.RequireFromString("18.25").Equal(released.Invoice.Total), released.Invoice.Total.String())
	s.Require().NotNil(released.Shipment.InvoiceNumber)
	s.Equal(released.Invoice.Number, *released.Shipment.InvoiceNumber)

	rec = s.do(http.MethodPost, "/api/v1/shipments/"+first["id"].(string)+"/release", "")
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/shipments/"+first["id"].(string)+"/invoice", "")
	s.Equal(http.StatusConflict, rec.Code)

	code, _ = s.intake()
	s.Equal(http.StatusCreated, code)
}

func (s *ServerTestSuite) TestRequestValidation() {
	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"zero pieces", http.MethodPost, "/api/v1/shipments", `{"shipper":"a","consignee":"b","weight":"1","pieceCount":0}`},
		{"missing shipper", http.MethodPost, "/api/v1/shipments", `{"consignee":"b","weight":"1","pieceCount":1}`},
		{"weight not decimal", http.MethodPost, "/api/v1/shipments", `{"shipper":"a","consignee":"b","weight":"heavy","pieceCount":1}`},
		{"bad section", http.MethodPost, "/api/v1/racks/ranges", `{"section":"A B","start":1,"end":2}`},
		{"bad shipment id", http.MethodGet, "/api/v1/shipments/not-a-uuid", ""},
		{"bad status filter", http.MethodGet, "/api/v1/racks?status=broken", ""},
		{"negative free days", http.MethodPut, "/api/v1/pricing",
			`{"perKgDayRate":"1","handlingFee":"1","flatRate":"1","freeDays":-1,` +
				`"perKgDayEnabled":true,"handlingEnabled":true,"flatRateEnabled":false}`},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			rec := s.do(tt.method, tt.target, tt.body)
			s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())

			var body httpapi.Error
			s.decode(rec, &body)
			s.Equal(http.StatusBadRequest, body.Code)
			s.NotEmpty(body.Message)
		})
	}
}

func (s *ServerTestSuite) TestInvertedRangeIsRejected() {
	rec := s.do(http.MethodPost, "/api/v1/racks/ranges", `{"section":"A","start":5,"end":2}`)
	s.Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
}

func (s *ServerTestSuite) TestUnknownShipment() {
	rec := s.do(http.MethodPost, "/api/v1/shipments/1b4e28ba-2fa1-11d2-883f-0016d3cca427/release", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestRackMaintenance() {
	s.seedRacks()

	code, _ := s.intake()
	s.Require().Equal(http.StatusCreated, code)

	rec := s.do(http.MethodDelete, "/api/v1/racks/A-001", "")
	s.Equal(http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPut, "/api/v1/racks/A-002/capacity", `{"capacity":3}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	var view queries.RackView
	s.decode(rec, &view)
	s.Equal(3, view.Capacity)

	rec = s.do(http.MethodPut, "/api/v1/racks/A-002/status", `{"enabled":false}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.decode(rec, &view)
	s.Equal("disabled", view.Status)

	rec = s.do(http.MethodDelete, "/api/v1/racks/A-002", "")
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodDelete, "/api/v1/racks/A-002", "")
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ServerTestSuite) TestListRacksPassesFilters() {
	s.racks.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.ListRacksQuery) bool {
		status, ok := q.Status()
		return q.Section() == "A" && ok && status.String() == "full"
	})).Return([]queries.RackView{{ID: "A-001", Section: "A", Capacity: 1, Occupancy: 1, Status: "full"}}, nil)

	rec := s.do(http.MethodGet, "/api/v1/racks?section=A&status=full", "")
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	var views []queries.RackView
	s.decode(rec, &views)
	s.Require().Len(views, 1)
	s.Equal("A-001", views[0].ID)
	s.racks.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestGetInvoice() {
	s.invoices.On("Handle", mock.Anything, mock.Anything).
		Return(queries.InvoiceView{}, errs.NewObjectNotFoundError("invoice", "INV20250928000001")).Once()

	rec := s.do(http.MethodGet, "/api/v1/invoices/INV20250928000001", "")
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/invoices/garbage", "")
	s.Equal(http.StatusBadRequest, rec.Code)
	s.invoices.AssertNumberOfCalls(s.T(), "Handle", 1)
}

func (s *ServerTestSuite) TestPricing() {
	rec := s.do(http.MethodGet, "/api/v1/pricing", "")
	s.Require().Equal(http.StatusOK, rec.Code)

	var current httpapi.Pricing
	s.decode(rec, &current)
	s.True(decimal.RequireFromString("0.5").Equal(current.PerKgDayRate))
	s.Equal(2, current.FreeDays)
	s.False(current.FlatRateEnabled)

	rec = s.do(http.MethodPut, "/api/v1/pricing",
		`{"perKgDayRate":"1","handlingFee":"0","flatRate":"25","freeDays":0,`+
			`"perKgDayEnabled":true,"handlingEnabled":false,"flatRateEnabled":true}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, "/api/v1/pricing", "")
	s.decode(rec, &current)
	s.True(decimal.NewFromInt(25).Equal(current.FlatRate))
	s.True(current.FlatRateEnabled)
	s.Equal(0, current.FreeDays)
}

func (s *ServerTestSuite) TestHealthAndMetrics() {
	rec := s.do(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)

	s.seedRacks()
	code, _ := s.intake()
	s.Require().Equal(http.StatusCreated, code)

	rec = s.do(http.MethodGet, "/metrics", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `warehouse_shipment_intakes_total{result="ok"} 1`)
	s.Contains(rec.Body.String(), `route="/api/v1/shipments"`)
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func TestRouterServesSwagger(t *testing.T) {
	e, err := httpapi.NewRouter(httpapi.NewServer(httpapi.Commands{}, httpapi.Queries{}, nil, nil, nil, nil),
		httpapi.RouterOptions{Swagger: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "CreateRackRange")
}
