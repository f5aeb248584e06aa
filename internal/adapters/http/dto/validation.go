package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/acme/quote-manager/internal/domain"
)

var (
	// ErrValidation marks a request that decoded but broke a rule.
	ErrValidation = errors.New("validation failed")

	// ErrBinding marks a body or query string that could not be decoded.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field names in errors are the
// JSON or query names the storefront and admin UI send.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)

		_ = validate.RegisterValidation("gid", validateGID)
		_ = validate.RegisterValidation("notempty", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})

	return validate
}

func jsonFieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return ""
}

// validateGID accepts platform global ids and bare numeric draft order ids.
// With a parameter, as in gid=DraftOrder, the id must name that resource.
// Empty values pass so the tag composes with notempty.
func validateGID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}

	id := domain.NormalizeQuoteID(value)
	if resource := fl.Param(); resource != "" {
		return strings.HasPrefix(id, "gid://shopify/"+resource+"/")
	}

	return strings.HasPrefix(id, "gid://")
}

// Validate checks struct tags.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// Validatable is implemented by requests with rules tags cannot express.
type Validatable interface {
	Validate() error
}

// ValidateAll checks struct tags, then the request's own rules.
func ValidateAll(v any) error {
	if err := Validate(v); err != nil {
		return err
	}

	if r, ok := v.(Validatable); ok {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return nil
}

// BindAndValidate decodes the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return ValidateAll(v)
}

// BindQueryAndValidate decodes the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return ValidateAll(v)
}

// RequestErrorMessage renders a binding or validation failure as the
// sentence carried in the error body.
func RequestErrorMessage(err error) string {
	var domainErr *domain.ValidationError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldMessage(fieldErrs[0])
	}

	return "Invalid request body"
}

// FieldErrors lists every failed rule as a user error, in the shape the
// Admin API uses for rejected mutations.
func FieldErrors(err error) []domain.UserError {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil
	}

	out := make([]domain.UserError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, domain.UserError{
			Field:   strings.Split(strings.TrimPrefix(fe.Namespace(), topLevel(fe)), "."),
			Message: fieldMessage(fe),
		})
	}

	return out
}

// topLevel is the struct name prefix of a namespace, including its dot.
func topLevel(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[:i+1]
	}

	return ""
}

func fieldMessage(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()

	switch fe.Tag() {
	case "required", "notempty":
		return field + " is required"
	case "gid":
		if param != "" {
			return field + " must be a " + param + " id"
		}

		return field + " must be a global id"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "gte":
		return field + " must be at least " + param
	case "lte":
		return field + " must be at most " + param
	case "email":
		return field + " must be an email address"
	default:
		return field + " is invalid"
	}
}
