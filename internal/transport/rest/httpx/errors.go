package httpx

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/spanner"
	"github.com/sirupsen/logrus"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	adomain "github.com/murkotick/storefront-service/internal/app/account/domain"
	odomain "github.com/murkotick/storefront-service/internal/app/order/domain"
	pdomain "github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

// StatusClientClosedRequest is the nginx convention for a caller that went away.
const StatusClientClosedRequest = 499

var ErrRateLimited = errors.New("rate limit exceeded")

// FieldError is one invalid request field.
type FieldError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// InvalidArgument builds a status error listing the offending fields.
func InvalidArgument(msg string, fields ...FieldError) error {
	return withViolations(status.New(codes.InvalidArgument, msg), fields).Err()
}

func withViolations(st *status.Status, fields []FieldError) *status.Status {
	if len(fields) == 0 {
		return st
	}
	br := &errdetails.BadRequest{}
	for _, f := range fields {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       f.Field,
			Description: f.Description,
		})
	}
	if withDetails, err := st.WithDetails(br); err == nil {
		return withDetails
	}
	return st
}

// Status translates application errors into gRPC statuses. Unknown errors
// become codes.Internal.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}

	if errors.Is(err, context.Canceled) {
		return status.New(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.New(codes.DeadlineExceeded, err.Error())
	}

	// Not found
	switch {
	case errors.Is(err, pdomain.ErrProductNotFound),
		errors.Is(err, odomain.ErrOrderNotFound),
		errors.Is(err, spanner.ErrRowNotFound):
		return status.New(codes.NotFound, err.Error())
	}

	// Invalid argument (validation)
	var verr *odomain.ValidationError
	if errors.As(err, &verr) {
		fields := make([]FieldError, 0, len(verr.Violations))
		for _, v := range verr.Violations {
			fields = append(fields, FieldError{Field: v.Field, Description: v.Description})
		}
		return withViolations(status.New(codes.InvalidArgument, odomain.ErrInvalidOrder.Error()), fields)
	}
	if pdomain.IsValidationError(err) {
		return withViolations(status.New(codes.InvalidArgument, err.Error()), productField(err))
	}
	switch {
	case adomain.IsValidationError(err),
		errors.Is(err, odomain.ErrInvalidOrder),
		errors.Is(err, odomain.ErrEmptyOrder),
		errors.Is(err, odomain.ErrInvalidPaymentMethod):
		return status.New(codes.InvalidArgument, err.Error())
	}

	// Failed precondition (stock and catalog state)
	switch {
	case errors.Is(err, odomain.ErrSizeUnavailable),
		errors.Is(err, odomain.ErrInsufficientStock):
		return status.New(codes.FailedPrecondition, err.Error())
	}

	switch {
	case errors.Is(err, adomain.ErrEmailTaken):
		return status.New(codes.AlreadyExists, err.Error())
	case errors.Is(err, auth.ErrMissingToken), errors.Is(err, auth.ErrInvalidToken):
		return status.New(codes.Unauthenticated, err.Error())
	case errors.Is(err, auth.ErrForbidden):
		return status.New(codes.PermissionDenied, err.Error())
	case errors.Is(err, ErrRateLimited):
		return status.New(codes.ResourceExhausted, err.Error())
	}

	if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
		return st
	}
	return status.New(codes.Internal, err.Error())
}

var productFields = []struct {
	err   error
	field string
}{
	{pdomain.ErrInvalidProductID, "id"},
	{pdomain.ErrEmptyProductName, "name"},
	{pdomain.ErrProductNameTooLong, "name"},
	{pdomain.ErrEmptyProductBrand, "brand"},
	{pdomain.ErrEmptyProductDescription, "description"},
	{pdomain.ErrEmptyProductCategory, "category"},
	{pdomain.ErrProductCategoryTooLong, "category"},
	{pdomain.ErrNegativePrice, "price"},
	{pdomain.ErrZeroPrice, "price"},
	{pdomain.ErrDiscountNotBelowPrice, "discountPrice"},
	{pdomain.ErrInvalidGender, "gender"},
	{pdomain.ErrInvalidRating, "rating"},
	{pdomain.ErrNoSizes, "sizes"},
	{pdomain.ErrEmptySize, "sizes"},
	{pdomain.ErrDuplicateSize, "sizes"},
	{pdomain.ErrNegativeStock, "sizes"},
}

func productField(err error) []FieldError {
	for _, pf := range productFields {
		if errors.Is(err, pf.err) {
			return []FieldError{{Field: pf.field, Description: pf.err.Error()}}
		}
	}
	return nil
}

// HTTPStatus maps a gRPC code onto the closest HTTP status.
func HTTPStatus(c codes.Code) int {
	switch c {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument, codes.OutOfRange:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists, codes.FailedPrecondition, codes.Aborted:
		return http.StatusConflict
	case codes.ResourceExhausted:
		return http.StatusTooManyRequests
	case codes.Canceled:
		return StatusClientClosedRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unimplemented:
		return http.StatusNotImplemented
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Body renders st as the JSON error body. Internal details are not exposed.
func Body(st *status.Status) ErrorBody {
	body := ErrorBody{Code: st.Code().String(), Message: st.Message()}
	if HTTPStatus(st.Code()) >= http.StatusInternalServerError {
		body.Message = "internal error"
	}
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			body.Fields = append(body.Fields, FieldError{Field: v.GetField(), Description: v.GetDescription()})
		}
	}
	return body
}

// WriteError classifies err and writes the error body. Server-side failures
// are logged with the original error.
func WriteError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	st := Status(err)
	code := HTTPStatus(st.Code())
	if code >= http.StatusInternalServerError && log != nil {
		log.WithError(err).Error("request failed")
	}
	WriteJSON(w, code, Body(st))
}
