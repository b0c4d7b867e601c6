package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"shopsecure/internal/core/application/usecases/commands"
	"shopsecure/internal/core/application/usecases/queries"
	"shopsecure/internal/generated/servers"
	"shopsecure/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// UploadsPath is the URL prefix under which stored images are served.
const UploadsPath = "/uploads"

// Server translates HTTP requests into commands and queries.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{handlers: handlers, logger: logger.With("component", "http_server")}
}

// SignUp handles POST /api/v1/signup.
func (s *Server) SignUp(c echo.Context) error {
	var req servers.SignUpJSONRequestBody
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	cmd, err := commands.NewSignUpCommand(req.Name, string(req.Email), req.Password)
	if err != nil {
		return err
	}

	id, err := s.handlers.SignUp.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, servers.SignUpResponse{Status: "success", UserId: id.Bytes()})
}

// Login handles POST /api/v1/login.
func (s *Server) Login(c echo.Context) error {
	var req servers.LoginJSONRequestBody
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	cmd, err := commands.NewLoginCommand(string(req.Email), req.Password)
	if err != nil {
		return err
	}

	result, err := s.handlers.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.LoginResponse{
		Status:    "success",
		Role:      result.Principal.Role.String(),
		UserId:    result.Principal.UserID.Bytes(),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	req, err := bindPlaceOrder(c)
	if err != nil {
		return err
	}

	var image []byte
	if isMultipart(c) {
		if image, err = readFormFile(c, "reference_image", false); err != nil {
			return err
		}
	}

	cmd, err := commands.NewPlaceOrderCommand(principal.UserID, req.ProductName, req.Price, req.Address,
		valueOr(req.PaymentType), image)
	if err != nil {
		return err
	}

	result, err := s.handlers.PlaceOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	resp := servers.PlaceOrderResponse{
		Status:      "success",
		OrderId:     result.Code.String(),
		OrderStatus: result.Status.String(),
	}
	if result.ReferenceImageRef != "" {
		url := imageURL(result.ReferenceImageRef)
		resp.ReferenceImageUrl = &url
	}

	return c.JSON(http.StatusCreated, resp)
}

// RegisterReferenceImage handles POST /api/v1/orders/:code/reference-image.
func (s *Server) RegisterReferenceImage(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	image, err := readFormFile(c, "image", true)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRegisterReferenceImageCommand(principal, c.Param("code"), image)
	if err != nil {
		return err
	}

	ref, err := s.handlers.RegisterReferenceImage.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, servers.ReferenceImageResponse{Status: "success", ImageUrl: imageURL(ref)})
}

// SendPasscode handles POST /api/v1/otp/send. A body is optional.
func (s *Server) SendPasscode(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req servers.SendPasscodeJSONRequestBody
	if c.Request().ContentLength != 0 {
		if err = c.Bind(&req); err != nil {
			return badRequest(err)
		}
	}

	cmd, err := commands.NewIssuePasscodeCommand(principal.UserID, valueOr(req.OrderId))
	if err != nil {
		return err
	}

	result, err := s.handlers.IssuePasscode.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.SendPasscodeResponse{
		Status:    string(result.Delivery),
		OrderId:   result.OrderCode.String(),
		ExpiresAt: result.ExpiresAt,
	})
}

// VerifyPasscode handles POST /api/v1/otp/verify.
func (s *Server) VerifyPasscode(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req servers.VerifyPasscodeJSONRequestBody
	if err = c.Bind(&req); err != nil {
		return badRequest(err)
	}

	cmd, err := commands.NewVerifyPasscodeCommand(principal.UserID, valueOr(req.OrderId), req.Otp)
	if err != nil {
		return err
	}

	result, err := s.handlers.VerifyPasscode.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, servers.VerifyPasscodeResponse{
		Status:      "verified",
		OrderId:     result.OrderCode.String(),
		OrderStatus: result.Status.String(),
	})
}

// SubmitReturn handles POST /api/v1/returns as multipart/form-data with the
// fields order_id, email, reason and the image file.
func (s *Server) SubmitReturn(c echo.Context) error {
	image, err := readFormFile(c, "image", true)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitReturnCommand(c.FormValue("order_id"), c.FormValue("email"),
		c.FormValue("reason"), image)
	if err != nil {
		return err
	}

	result, err := s.handlers.SubmitReturn.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, servers.ReturnResponse{
		Status:     result.Decision.String(),
		ReturnId:   result.ReturnID.Bytes(),
		Similarity: result.Similarity,
		RiskScore:  result.RiskScore,
		Severity:   result.Severity.String(),
		ImageUrl:   imageURL(result.ImageRef),
	})
}

// SubmitFeedback handles POST /api/v1/feedback.
func (s *Server) SubmitFeedback(c echo.Context) error {
	var req servers.SubmitFeedbackJSONRequestBody
	if err := c.Bind(&req); err != nil {
		return badRequest(err)
	}

	cmd, err := commands.NewSubmitFeedbackCommand(string(req.Email), req.Rating, valueOr(req.Comment))
	if err != nil {
		return err
	}

	id, err := s.handlers.SubmitFeedback.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, servers.FeedbackResponse{Status: "success", FeedbackId: id.Bytes()})
}

// DashboardStats handles GET /api/v1/admin/dashboard-stats.
func (s *Server) DashboardStats(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	stats, err := s.handlers.DashboardStats.Handle(c.Request().Context(), queries.NewGetDashboardStatsQuery(principal))
	if err != nil {
		return err
	}

	rows := make([]servers.SecurityLogRow, len(stats.RecentLogs))
	for i, l := range stats.RecentLogs {
		rows[i] = servers.SecurityLogRow{
			Id:                 l.ID.Bytes(),
			Email:              l.Email,
			OrderId:            l.OrderCode,
			ImgSimilarityScore: l.Similarity,
			RiskScore:          l.RiskScore,
			Severity:           l.Severity.String(),
			FinalStatus:        l.Decision.String(),
			Timestamp:          l.CreatedAt,
		}
	}

	return c.JSON(http.StatusOK, servers.DashboardStats{
		TotalOrders:    stats.TotalOrders,
		TotalReturns:   stats.TotalReturns,
		CriticalAlerts: stats.CriticalAlerts,
		LogsList:       rows,
	})
}

// bindPlaceOrder reads the order fields from a JSON body or from multipart form
// fields. The reference image file of a multipart request is read separately.
func bindPlaceOrder(c echo.Context) (servers.PlaceOrderJSONRequestBody, error) {
	var req servers.PlaceOrderJSONRequestBody
	if !isMultipart(c) {
		if err := c.Bind(&req); err != nil {
			return req, badRequest(err)
		}
		return req, nil
	}

	price, err := strconv.ParseFloat(c.FormValue("price"), 64)
	if err != nil {
		return req, errs.NewValueIsInvalidErrorWithCause("price", err)
	}
	req.Price = price
	req.ProductName = c.FormValue("product_name")
	req.Address = c.FormValue("address")
	if paymentType := c.FormValue("payment_type"); paymentType != "" {
		req.PaymentType = &paymentType
	}
	return req, nil
}

// valueOr dereferences an optional generated field, yielding the zero value
// when it is absent.
func valueOr[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body").SetInternal(err)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// readFormFile reads at most one byte past the image limit so oversize
// uploads are rejected by the command's size check.
func readFormFile(c echo.Context, field string, required bool) ([]byte, error) {
	header, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			return nil, errs.NewValueIsRequiredError(field)
		}
		return nil, nil
	}
	if err != nil {
		return nil, badRequest(err)
	}

	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return io.ReadAll(io.LimitReader(f, commands.MaxImageSize+1))
}

func imageURL(ref string) string {
	if ref == "" {
		return ""
	}
	return path.Join(UploadsPath, ref)
}
