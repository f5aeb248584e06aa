package logging

import (
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

var (
	// Admin API, storefront and custom-app tokens: shpat_, shpca_, shppa_, shpss_, shpua_.
	shopTokenPattern = regexp.MustCompile(`^shp(at|ca|pa|ss|ua)_[A-Za-z0-9]+$`)

	// Session tokens minted by the app bridge are HS256 JWTs.
	sessionTokenPattern = regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`)

	authHeaderPattern = regexp.MustCompile(`(?i)^(bearer|basic)\s+.+$`)

	// Offer recipients and customer contacts.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
)

// credentialFields are attribute and struct field names whose values are
// never written to a log sink.
var credentialFields = []string{
	"password",
	"secret",
	"token",
	"apiKey",
	"api_key",
	"apiSecret",
	"api_secret",
	"accessToken",
	"access_token",
	"AccessToken",
	"X-Shopify-Access-Token",
	"sessionToken",
	"session_token",
	"authorization",
	"auth",
	"cookie",
	"hmac",
	"code",
	"state",
}

// customerFields carry buyer PII from draft orders and offer emails.
var customerFields = []string{
	"email",
	"phone",
	"cc",
	"bcc",
}

// DefaultRedactOptions returns the masq options used on every log sink.
func DefaultRedactOptions() []masq.Option {
	opts := make([]masq.Option, 0, len(credentialFields)+len(customerFields)+6)

	for _, name := range credentialFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	for _, name := range customerFields {
		opts = append(opts, masq.WithFieldName(name))
	}

	return append(opts,
		masq.WithFieldPrefix("secret"),
		masq.WithFieldPrefix("private"),
		masq.WithRegex(shopTokenPattern),
		masq.WithRegex(sessionTokenPattern),
		masq.WithRegex(authHeaderPattern),
		masq.WithRegex(emailPattern),
	)
}

// NewReplaceAttr returns a slog ReplaceAttr hook that redacts with the
// default options plus any extra ones.
func NewReplaceAttr(opts ...masq.Option) func(groups []string, a slog.Attr) slog.Attr {
	return masq.New(append(DefaultRedactOptions(), opts...)...)
}
