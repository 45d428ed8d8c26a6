package http

import (
	"context"
	"log/slog"
	"net/http"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	echoSwagger "github.com/swaggo/echo-swagger"
)

type (
	checkoutHandler interface {
		Handle(ctx context.Context, cmd commands.CheckoutCommand) (*order.Order, error)
	}

	verifyDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.VerifyDeliveryCommand) error
	}

	issueActiveOrderCodesHandler interface {
		Handle(ctx context.Context, cmd commands.IssueActiveOrderCodesCommand) ([]commands.ActiveOrderLine, error)
	}

	getSellerDeliveriesHandler interface {
		Handle(ctx context.Context, query queries.GetSellerDeliveriesQuery) ([]queries.GetSellerDeliveriesQueryResponse, error)
	}
)

// Server turns HTTP requests into commands and queries.
type Server struct {
	// Command handlers
	checkoutHandler              checkoutHandler
	verifyDeliveryHandler        verifyDeliveryHandler
	issueActiveOrderCodesHandler issueActiveOrderCodesHandler

	// Query handlers
	getSellerDeliveriesHandler getSellerDeliveriesHandler

	logger *slog.Logger
}

func NewServer(
	checkoutHandler checkoutHandler,
	verifyDeliveryHandler verifyDeliveryHandler,
	issueActiveOrderCodesHandler issueActiveOrderCodesHandler,
	getSellerDeliveriesHandler getSellerDeliveriesHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		checkoutHandler:              checkoutHandler,
		verifyDeliveryHandler:        verifyDeliveryHandler,
		issueActiveOrderCodesHandler: issueActiveOrderCodesHandler,
		getSellerDeliveriesHandler:   getSellerDeliveriesHandler,
		logger:                       logger.With("component", "http"),
	}
}

// Register mounts the API, the health probe and the swagger UI on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/orders")
	api.POST("/checkout", s.Checkout)
	api.POST("/verify-otp", s.VerifyOtp)
	api.GET("/deliveries/:sellerId", s.GetDeliveries)
	api.GET("/active-orders/:buyerId", s.GetActiveOrders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// Checkout handles POST /api/orders/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	var request CheckoutRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid request body")
	}

	buyerID, err := kernel.UUIDFromBytes(request.UserID[:])
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid checkout parameters: userId")
	}

	productIDs := make([]kernel.UUID, 0, len(request.Products))
	for _, raw := range request.Products {
		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid checkout parameters: products")
		}
		productIDs = append(productIDs, id)
	}

	cmd, err := commands.NewCheckoutCommand(kernel.NewUUID(), buyerID, productIDs)
	if err != nil {
		return s.fail(ctx, err)
	}

	o, err := s.checkoutHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(o))
}

// VerifyOtp handles POST /api/orders/verify-otp.
func (s *Server) VerifyOtp(ctx echo.Context) error {
	var request VerifyOtpRequest
	if err := ctx.Bind(&request); err != nil {
		return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid request body")
	}

	productID, err := kernel.UUIDFromBytes(request.ProductID[:])
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid productId")
	}

	cmd, err := commands.NewVerifyDeliveryCommand(productID, request.Otp)
	if err != nil {
		return s.fail(ctx, err)
	}

	if err = s.verifyDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.failVerification(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Message{Message: "OTP verified and order completed"})
}

// GetDeliveries handles GET /api/orders/deliveries/:sellerId.
func (s *Server) GetDeliveries(ctx echo.Context) error {
	sellerID, err := bindID(ctx, "sellerId")
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid sellerId: "+err.Error())
	}

	query, err := queries.NewGetSellerDeliveriesQuery(sellerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	deliveries, err := s.getSellerDeliveriesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, deliveryResponse(d))
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/orders/active-orders/:buyerId. Each call
// issues new codes, so the response must not be cached.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	buyerID, err := bindID(ctx, "buyerId")
	if err != nil {
		return writeError(ctx, http.StatusBadRequest, kindValidation, "Invalid buyerId: "+err.Error())
	}

	cmd, err := commands.NewIssueActiveOrderCodesCommand(buyerID)
	if err != nil {
		return s.fail(ctx, err)
	}

	items, err := s.issueActiveOrderCodesHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ActiveOrderLine, 0, len(items))
	for _, item := range items {
		response = append(response, activeOrderLineResponse(item))
	}

	ctx.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return ctx.JSON(http.StatusOK, response)
}

func bindID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		return kernel.UUID{}, err
	}
	return kernel.UUIDFromBytes(raw[:])
}
