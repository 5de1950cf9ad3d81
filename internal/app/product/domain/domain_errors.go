package domain

import "errors"

// Domain errors for Product aggregate
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrInvalidProductID indicates an id that is not a UUID.
	ErrInvalidProductID = errors.New("invalid product id")
)

// Domain errors for Money value object
var (
	// ErrNegativePrice indicates an attempt to set a negative price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrZeroPrice indicates an attempt to set a zero price.
	ErrZeroPrice = errors.New("price cannot be zero")

	// ErrDiscountNotBelowPrice indicates a discount price that is not lower than the list price.
	ErrDiscountNotBelowPrice = errors.New("discount price must be lower than price")
)

// Domain errors for Product validation
var (
	ErrEmptyProductName        = errors.New("product name cannot be empty")
	ErrEmptyProductBrand       = errors.New("product brand cannot be empty")
	ErrEmptyProductDescription = errors.New("product description cannot be empty")
	ErrEmptyProductCategory    = errors.New("product category cannot be empty")

	// ErrProductNameTooLong indicates the product name exceeds maximum length.
	ErrProductNameTooLong = errors.New("product name exceeds maximum length of 255 characters")

	// ErrProductCategoryTooLong indicates the product category exceeds maximum length.
	ErrProductCategoryTooLong = errors.New("product category exceeds maximum length of 100 characters")

	ErrInvalidGender = errors.New("gender must be one of male, female, unisex")
	ErrInvalidRating = errors.New("rating must be between 0 and 5")

	ErrNoSizes       = errors.New("product must offer at least one size")
	ErrEmptySize     = errors.New("size cannot be empty")
	ErrDuplicateSize = errors.New("size listed more than once")
	ErrNegativeStock = errors.New("stock cannot be negative")
)

// IsValidationError reports whether err is one of the product validation sentinels.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var validationErrors = []error{
	ErrInvalidProductID,
	ErrNegativePrice,
	ErrZeroPrice,
	ErrDiscountNotBelowPrice,
	ErrEmptyProductName,
	ErrEmptyProductBrand,
	ErrEmptyProductDescription,
	ErrEmptyProductCategory,
	ErrProductNameTooLong,
	ErrProductCategoryTooLong,
	ErrInvalidGender,
	ErrInvalidRating,
	ErrNoSizes,
	ErrEmptySize,
	ErrDuplicateSize,
	ErrNegativeStock,
}
