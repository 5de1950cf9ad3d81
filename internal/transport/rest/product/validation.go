package product

import (
	"github.com/google/uuid"

	"github.com/murkotick/storefront-service/internal/app/product/domain"
	"github.com/murkotick/storefront-service/internal/transport/rest/httpx"
)

// validateCreateRequest reports every missing required field at once; the
// domain only reports the first rule a product breaks.
func validateCreateRequest(req productRequest) error {
	var missing []httpx.FieldError
	require := func(ok bool, field string) {
		if !ok {
			missing = append(missing, httpx.FieldError{Field: field, Description: "is required"})
		}
	}
	require(req.Name != nil && *req.Name != "", "name")
	require(req.Brand != nil && *req.Brand != "", "brand")
	require(req.Description != nil && *req.Description != "", "description")
	require(req.Price != nil, "price")
	require(req.Gender != nil && *req.Gender != "", "gender")
	require(req.Category != nil && *req.Category != "", "category")
	require(len(req.Sizes) > 0, "sizes")

	if len(missing) > 0 {
		return httpx.InvalidArgument("missing required fields", missing...)
	}
	return nil
}

func validateUpdateRequest(req productRequest) error {
	if req.Name == nil && req.Brand == nil && req.Description == nil && req.Price == nil &&
		!req.DiscountPrice.Set && req.Gender == nil && req.Category == nil && req.Sizes == nil &&
		req.Images == nil && req.Rating == nil && req.Featured == nil && req.IsNew == nil &&
		req.Tags == nil && req.Ingredients == nil {
		return httpx.InvalidArgument("at least one field must be provided")
	}
	return nil
}

func validateProductID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrInvalidProductID
	}
	return nil
}
