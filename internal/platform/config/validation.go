package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("config validation failed")

// validate reports fields by their koanf keys, so messages name the same
// path as the YAML profiles and environment variables.
var validate = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})

	return v
}()

// Validate checks field rules, then the rules that span sections. The
// service refuses to start on any failure.
func (c *Config) Validate() error {
	var problems []string

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(c); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			problems = append(problems, describe(fe))
		}
	} else if err != nil {
		return err
	}

	if len(problems) == 0 {
		problems = c.crossSectionProblems()
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(problems, "\n  "))
}

func (c *Config) crossSectionProblems() []string {
	var problems []string

	if c.Shopify.Endpoint == "" && c.Shopify.Store.Domain == "" {
		problems = append(problems, "shopify.store.domain is required when shopify.endpoint is not set")
	}

	if c.Auth.Enabled && (c.Shopify.API.Key == "" || c.Shopify.API.Secret == "") {
		problems = append(problems, "shopify.api.key and shopify.api.secret are required when auth is enabled")
	}

	switch {
	case c.Session.Driver == "redis" && c.Session.Redis.Addr == "":
		problems = append(problems, "session.redis.addr is required when session.driver is redis")
	case c.Session.Driver == "sql" && c.Session.SQL.DSN == "":
		problems = append(problems, "session.sql.dsn is required when session.driver is sql")
	}

	return problems
}

// configKey turns a validator namespace such as Config.log.file.path into
// the koanf key log.file.path.
func configKey(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return key
}

func describe(fe validator.FieldError) string {
	key, param := configKey(fe.Namespace()), fe.Param()

	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "required_if":
		// The param is "<Field> <value>"; only the enabled switches use it.
		parent := key[:strings.LastIndexByte(key, '.')+1]
		return key + " is required when " + parent + "enabled is true"
	case "min":
		return key + " must be at least " + param
	case "max":
		return key + " must be at most " + param
	case "gt":
		return key + " must be greater than " + param
	case "len":
		return key + " must be exactly " + param + " characters"
	case "oneof":
		return key + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "url":
		return key + " must be a valid URL"
	case "email":
		return key + " must be a valid email address"
	case "hostname":
		return key + " must be a valid hostname"
	default:
		return key + " failed rule " + fe.Tag()
	}
}
