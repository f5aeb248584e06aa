package domain

// PurchasingEntity is the customer or company placing a quote.
// It is a closed union: PurchasingCompany or PurchasingCustomer.
type PurchasingEntity interface {
	// CompanyName is the single resolver for the buyer's company.
	CompanyName() string

	purchasingEntity()
}

// PurchasingCompany is a B2B company buying at one of its locations.
type PurchasingCompany struct {
	Company      string
	LocationID   string
	LocationName string
}

// CompanyName returns the company's name.
func (p PurchasingCompany) CompanyName() string { return p.Company }

func (PurchasingCompany) purchasingEntity() {}

// PurchasingCustomer is a plain customer; the company comes from the
// customer's default address.
type PurchasingCustomer struct {
	DefaultCompany string
}

// CompanyName returns the default address company.
func (p PurchasingCustomer) CompanyName() string { return p.DefaultCompany }

func (PurchasingCustomer) purchasingEntity() {}
