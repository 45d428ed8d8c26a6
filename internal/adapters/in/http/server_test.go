package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCheckoutHandler struct{ mock.Mock }

func (m *MockCheckoutHandler) Handle(ctx context.Context, cmd commands.CheckoutCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockVerifyDeliveryHandler struct{ mock.Mock }

func (m *MockVerifyDeliveryHandler) Handle(ctx context.Context, cmd commands.VerifyDeliveryCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockIssueActiveOrderCodesHandler struct{ mock.Mock }

func (m *MockIssueActiveOrderCodesHandler) Handle(
	ctx context.Context,
	cmd commands.IssueActiveOrderCodesCommand,
) ([]commands.ActiveOrderLine, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]commands.ActiveOrderLine), args.Error(1)
}

type MockGetSellerDeliveriesHandler struct{ mock.Mock }

func (m *MockGetSellerDeliveriesHandler) Handle(
	ctx context.Context,
	query queries.GetSellerDeliveriesQuery,
) ([]queries.GetSellerDeliveriesQueryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetSellerDeliveriesQueryResponse), args.Error(1)
}

type serverFixture struct {
	echo       *echo.Echo
	checkout   *MockCheckoutHandler
	verify     *MockVerifyDeliveryHandler
	issueCodes *MockIssueActiveOrderCodesHandler
	deliveries *MockGetSellerDeliveriesHandler
}

func newServerFixture(t *testing.T, validate bool) serverFixture {
	t.Helper()
	f := serverFixture{
		echo:       echo.New(),
		checkout:   new(MockCheckoutHandler),
		verify:     new(MockVerifyDeliveryHandler),
		issueCodes: new(MockIssueActiveOrderCodesHandler),
		deliveries: new(MockGetSellerDeliveriesHandler),
	}

	if validate {
		doc, err := httpin.LoadOpenAPI()
		require.NoError(t, err)
		validator, err := httpin.OpenAPIValidator(doc)
		require.NoError(t, err)
		f.echo.Use(validator)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server := httpin.NewServer(f.checkout, f.verify, f.issueCodes, f.deliveries, logger)
	server.Register(f.echo)
	return f
}

func (f serverFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httpin.Error {
	t.Helper()
	var body httpin.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func placedOrder(t *testing.T, buyerID kernel.UUID, productIDs ...kernel.UUID) *order.Order {
	t.Helper()
	lines := make([]*order.Line, 0, len(productIDs))
	for _, id := range productIDs {
		l, err := order.NewLine(id, kernel.DigestOf("482913"))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.NewOrder(kernel.NewUUID(), buyerID, time.Now().UTC(), lines)
	require.NoError(t, err)
	return o
}

func TestServer_Health(t *testing.T) {
	f := newServerFixture(t, true)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestServer_Checkout(t *testing.T) {
	buyerID := kernel.NewUUID()
	p1, p2 := kernel.NewUUID(), kernel.NewUUID()
	body := `{"userId":"` + buyerID.String() + `","products":["` + p1.String() + `","` + p2.String() + `"]}`

	t.Run("returns the order without codes", func(t *testing.T) {
		f := newServerFixture(t, true)
		o := placedOrder(t, buyerID, p1, p2)
		f.checkout.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CheckoutCommand) bool {
			return cmd.BuyerID().IsEqual(buyerID) && len(cmd.ProductIDs()) == 2
		})).Return(o, nil).Once()

		rec := f.do(http.MethodPost, "/api/orders/checkout", body)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var got httpin.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, o.ID().String(), got.ID.String())
		assert.Equal(t, buyerID.String(), got.UserID.String())
		require.Len(t, got.Products, 2)
		assert.Equal(t, p1.String(), got.Products[0].Product.String())
		assert.Equal(t, "in process", got.Products[0].Status)
		assert.NotContains(t, rec.Body.String(), kernel.DigestOf("482913").String())
		assert.NotContains(t, rec.Body.String(), "482913")
		f.checkout.AssertExpectations(t)
	})

	t.Run("rejects a malformed body before the handler", func(t *testing.T) {
		f := newServerFixture(t, true)

		rec := f.do(http.MethodPost, "/api/orders/checkout", `{"userId":"nope","products":[]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeError(t, rec).Kind)
		f.checkout.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("rejects duplicate products", func(t *testing.T) {
		f := newServerFixture(t, false)
		dup := `{"userId":"` + buyerID.String() + `","products":["` + p1.String() + `","` + p1.String() + `"]}`

		rec := f.do(http.MethodPost, "/api/orders/checkout", dup)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeError(t, rec).Kind)
	})

	t.Run("maps a sold product to conflict", func(t *testing.T) {
		f := newServerFixture(t, true)
		f.checkout.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errors.Join(commands.ErrCheckoutFailed, product.ErrProductIsNotAvailable)).Once()

		rec := f.do(http.MethodPost, "/api/orders/checkout", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
		got := decodeError(t, rec)
		assert.Equal(t, "conflict", got.Kind)
		assert.Equal(t, http.StatusConflict, got.Code)
	})

	t.Run("maps a missing product to not found", func(t *testing.T) {
		f := newServerFixture(t, true)
		f.checkout.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewObjectNotFoundError("productId", p2.String())).Once()

		rec := f.do(http.MethodPost, "/api/orders/checkout", body)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		got := decodeError(t, rec)
		assert.Equal(t, "not_found", got.Kind)
		assert.Contains(t, got.Message, p2.String())
	})

	t.Run("hides store failures", func(t *testing.T) {
		f := newServerFixture(t, true)
		f.checkout.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")).Once()

		rec := f.do(http.MethodPost, "/api/orders/checkout", body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		got := decodeError(t, rec)
		assert.Equal(t, "store", got.Kind)
		assert.NotContains(t, got.Message, "10.0.0.5")
	})
}

func TestServer_VerifyOtp(t *testing.T) {
	productID := kernel.NewUUID()
	body := `{"productId":"` + productID.String() + `","otp":"482913"}`

	tests := []struct {
		name       string
		handlerErr error
		wantStatus int
		wantKind   string
	}{
		{name: "wrong code", handlerErr: order.ErrInvalidDeliveryCode, wantStatus: http.StatusBadRequest, wantKind: "invalid_code"},
		{name: "already completed", handlerErr: order.ErrLineAlreadyCompleted, wantStatus: http.StatusConflict, wantKind: "conflict"},
		{
			name:       "product never sold",
			handlerErr: errors.Join(commands.ErrOrderNotFound, errs.NewObjectNotFoundError("productId", productID.String())),
			wantStatus: http.StatusBadRequest,
			wantKind:   "not_found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newServerFixture(t, true)
			f.verify.On("Handle", mock.Anything, mock.Anything).Return(tt.handlerErr).Once()

			rec := f.do(http.MethodPost, "/api/orders/verify-otp", body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantKind, decodeError(t, rec).Kind)
		})
	}

	t.Run("completes the delivery", func(t *testing.T) {
		f := newServerFixture(t, true)
		f.verify.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.VerifyDeliveryCommand) bool {
			return cmd.ProductID().IsEqual(productID) && cmd.Code() == "482913"
		})).Return(nil).Once()

		rec := f.do(http.MethodPost, "/api/orders/verify-otp", body)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"OTP verified and order completed"}`, rec.Body.String())
	})

	t.Run("requires a code", func(t *testing.T) {
		f := newServerFixture(t, true)

		rec := f.do(http.MethodPost, "/api/orders/verify-otp", `{"productId":"`+productID.String()+`"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeError(t, rec).Kind)
		f.verify.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_GetDeliveries(t *testing.T) {
	sellerID := kernel.NewUUID()
	buyerID := kernel.NewUUID()

	t.Run("lists pending deliveries", func(t *testing.T) {
		f := newServerFixture(t, true)
		delivery := queries.GetSellerDeliveriesQueryResponse{
			OrderID:   kernel.NewUUID(),
			OrderedAt: time.Now().UTC(),
			Status:    order.InProcess,
			Product: queries.DeliveryProduct{
				ID:       kernel.NewUUID(),
				Name:     "Camera",
				Price:    decimal.RequireFromString("80.50"),
				Category: "photo",
			},
			Buyer: user.PublicProfile{ID: buyerID, FirstName: "Bea", LastName: "Tester", Email: "bea@example.com", Age: 29},
		}
		f.deliveries.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetSellerDeliveriesQuery) bool {
			return q.SellerID().IsEqual(sellerID)
		})).Return([]queries.GetSellerDeliveriesQueryResponse{delivery}, nil).Once()

		rec := f.do(http.MethodGet, "/api/orders/deliveries/"+sellerID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		var got []httpin.Delivery
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Camera", got[0].Product.Name)
		assert.Equal(t, buyerID.String(), got[0].Buyer.ID.String())
		assert.Equal(t, "in process", got[0].Status)
		assert.NotContains(t, rec.Body.String(), "otp")
	})

	t.Run("empty list is an empty array", func(t *testing.T) {
		f := newServerFixture(t, true)
		f.deliveries.On("Handle", mock.Anything, mock.Anything).
			Return([]queries.GetSellerDeliveriesQueryResponse{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/orders/deliveries/"+sellerID.String(), "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("rejects a malformed seller id", func(t *testing.T) {
		f := newServerFixture(t, false)

		rec := f.do(http.MethodGet, "/api/orders/deliveries/not-a-uuid", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "validation", decodeError(t, rec).Kind)
		f.deliveries.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})
}

func TestServer_GetActiveOrders(t *testing.T) {
	buyerID := kernel.NewUUID()
	code, err := kernel.NewDeliveryCode(482913)
	require.NoError(t, err)

	f := newServerFixture(t, true)
	item := commands.ActiveOrderLine{
		OrderID:   kernel.NewUUID(),
		OrderedAt: time.Now().UTC(),
		ProductID: kernel.NewUUID(),
		Status:    order.InProcess,
		Code:      code,
		Seller:    &user.PublicProfile{ID: kernel.NewUUID(), FirstName: "Sam", LastName: "Seller", Email: "sam@example.com", Age: 41},
	}
	f.issueCodes.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.IssueActiveOrderCodesCommand) bool {
		return cmd.BuyerID().IsEqual(buyerID)
	})).Return([]commands.ActiveOrderLine{item}, nil).Once()

	rec := f.do(http.MethodGet, "/api/orders/active-orders/"+buyerID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get(echo.HeaderCacheControl))
	var got []httpin.ActiveOrderLine
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "482913", got[0].Otp)
	assert.Nil(t, got[0].Product)
	require.NotNil(t, got[0].Seller)
	assert.Equal(t, "Sam", got[0].Seller.FirstName)
}

func TestServer_GetActiveOrders_ConcurrentRotationIsConflict(t *testing.T) {
	f := newServerFixture(t, true)
	f.issueCodes.On("Handle", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %s", order.ErrDeliveryCodeSuperseded, kernel.NewUUID())).Once()

	rec := f.do(http.MethodGet, "/api/orders/active-orders/"+kernel.NewUUID().String(), "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeError(t, rec).Kind)
}

func TestRegisterSwagger_ServesTheDocument(t *testing.T) {
	doc, err := httpin.LoadOpenAPI()
	require.NoError(t, err)
	require.NoError(t, httpin.RegisterSwagger(doc))

	f := newServerFixture(t, false)
	rec := f.do(http.MethodGet, "/swagger/doc.json", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/orders/verify-otp")
}
