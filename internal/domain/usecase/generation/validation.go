package generation

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amirhossein-jamali/headshot-service/internal/domain/entity"
	errs "github.com/amirhossein-jamali/headshot-service/internal/domain/error"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
}

// OptionsValidator validates generation options at submission and again
// before execution
type OptionsValidator struct {
	validate *validator.Validate
}

// NewOptionsValidator creates a validator with the image_url rule registered
func NewOptionsValidator() *OptionsValidator {
	v := validator.New()
	if err := v.RegisterValidation("image_url", validateImageURL); err != nil {
		panic(fmt.Sprintf("register image_url validation: %v", err))
	}
	return &OptionsValidator{validate: v}
}

// Validate returns ErrInvalidOptions naming the first offending field
func (v *OptionsValidator) Validate(options entity.GenerationOptions) error {
	err := v.validate.Struct(options)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("%w: %s failed %s", errs.ErrInvalidOptions, strings.ToLower(fe.Field()), fe.Tag())
	}
	return fmt.Errorf("%w: %v", errs.ErrInvalidOptions, err)
}

// validateImageURL accepts absolute http(s) URLs whose path ends in a supported image extension
func validateImageURL(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return allowedImageExtensions[strings.ToLower(path.Ext(u.Path))]
}

// ParseGenerationID parses a generation id from a query or form value
func ParseGenerationID(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%w: generation ID is required", errs.ErrInvalidGenerationID)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errs.ErrInvalidGenerationID
	}
	return id, nil
}
