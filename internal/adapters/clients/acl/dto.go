package acl

import (
	"time"

	"github.com/shopspring/decimal"
)

// External DTOs. Field names follow the Admin API; none of these types leave
// the package.

type connection[T any] struct {
	Edges []struct {
		Node T `json:"node"`
	} `json:"edges"`
}

// nodes flattens an edges/node connection.
func (c connection[T]) nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}

	return out
}

type moneyV2 struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

type moneyBag struct {
	ShopMoney moneyV2 `json:"shopMoney"`
}

type imageDTO struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type metafieldDTO struct {
	Value string `json:"value"`
}

type customerDTO struct {
	ID             string          `json:"id"`
	FirstName      string          `json:"firstName"`
	LastName       string          `json:"lastName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	DefaultAddress *companyAddress `json:"defaultAddress"`
}

type companyAddress struct {
	Company string `json:"company"`
}

type addressDTO struct {
	Name         string `json:"name"`
	Company      string `json:"company"`
	Address1     string `json:"address1"`
	Address2     string `json:"address2"`
	City         string `json:"city"`
	ProvinceCode string `json:"provinceCode"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

// purchasingEntityDTO is the union of PurchasingCompany and Customer,
// discriminated by __typename.
type purchasingEntityDTO struct {
	Typename string `json:"__typename"`
	Company  *struct {
		Name string `json:"name"`
	} `json:"company"`
	Location *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"location"`
	DefaultAddress *companyAddress `json:"defaultAddress"`
}

type variantDTO struct {
	ID    string    `json:"id"`
	Image *imageDTO `json:"image"`
}

type lineItemDTO struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Quantity          int             `json:"quantity"`
	OriginalUnitPrice decimal.Decimal `json:"originalUnitPrice"`
	RequiresShipping  *bool           `json:"requiresShipping"`
	Taxable           *bool           `json:"taxable"`
	Image             *imageDTO       `json:"image"`
	Variant           *variantDTO     `json:"variant"`
}

type appliedDiscountDTO struct {
	Description string          `json:"description"`
	ValueType   string          `json:"valueType"`
	Value       decimal.Decimal `json:"value"`
}

type shippingLineDTO struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type taxLineDTO struct {
	Title          string          `json:"title"`
	Rate           decimal.Decimal `json:"rate"`
	RatePercentage decimal.Decimal `json:"ratePercentage"`
	Source         string          `json:"source"`
	PriceSet       *moneyBag       `json:"priceSet"`
}

type paymentTermsDTO struct {
	ID               string `json:"id"`
	PaymentTermsName string `json:"paymentTermsName"`
	TranslatedName   string `json:"translatedName"`
	DueInDays        *int   `json:"dueInDays"`
}

type paymentTermsTemplateDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	TranslatedName string `json:"translatedName"`
	DueInDays      *int   `json:"dueInDays"`
}

type draftOrderDTO struct {
	ID                 string                  `json:"id"`
	Name               string                  `json:"name"`
	CreatedAt          time.Time               `json:"createdAt"`
	Status             string                  `json:"status"`
	Tags               []string                `json:"tags"`
	Note2              string                  `json:"note2"`
	Email              string                  `json:"email"`
	Metafield          *metafieldDTO           `json:"metafield"`
	PaymentTerms       *paymentTermsDTO        `json:"paymentTerms"`
	Customer           *customerDTO            `json:"customer"`
	ShippingAddress    *addressDTO             `json:"shippingAddress"`
	BillingAddress     *addressDTO             `json:"billingAddress"`
	PurchasingEntity   *purchasingEntityDTO    `json:"purchasingEntity"`
	LineItems          connection[lineItemDTO] `json:"lineItems"`
	AppliedDiscount    *appliedDiscountDTO     `json:"appliedDiscount"`
	ShippingLine       *shippingLineDTO        `json:"shippingLine"`
	TaxLines           []taxLineDTO            `json:"taxLines"`
	SubtotalPrice      decimal.Decimal         `json:"subtotalPrice"`
	TotalPrice         decimal.Decimal         `json:"totalPrice"`
	TotalTax           decimal.Decimal         `json:"totalTax"`
	TotalShippingPrice decimal.Decimal         `json:"totalShippingPrice"`
	TotalDiscountsSet  *moneyBag               `json:"totalDiscountsSet"`
}

type productDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Handle        string    `json:"handle"`
	FeaturedImage *imageDTO `json:"featuredImage"`
	PriceRangeV2  *struct {
		MinVariantPrice moneyV2 `json:"minVariantPrice"`
	} `json:"priceRangeV2"`
	Variants connection[productVariantDTO] `json:"variants"`
}

type productVariantDTO struct {
	ID            string           `json:"id"`
	Price         *decimal.Decimal `json:"price"`
	InventoryItem *struct {
		ID string `json:"id"`
	} `json:"inventoryItem"`
	ContextualPricing *struct {
		Price *moneyV2 `json:"price"`
	} `json:"contextualPricing"`
}

type locationDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Response envelopes, one per document.

type draftOrdersData struct {
	DraftOrders connection[draftOrderDTO] `json:"draftOrders"`
}

type draftOrderData struct {
	DraftOrder *draftOrderDTO `json:"draftOrder"`
}

type draftOrderUpdateData struct {
	DraftOrderUpdate struct {
		DraftOrder *draftOrderDTO `json:"draftOrder"`
	} `json:"draftOrderUpdate"`
}

type draftOrderCompleteData struct {
	DraftOrderComplete struct {
		DraftOrder *struct {
			ID         string `json:"id"`
			Status     string `json:"status"`
			InvoiceURL string `json:"invoiceUrl"`
			Order      *struct {
				ID string `json:"id"`
			} `json:"order"`
		} `json:"draftOrder"`
	} `json:"draftOrderComplete"`
}

type paymentTermsTemplatesData struct {
	PaymentTermsTemplates []paymentTermsTemplateDTO `json:"paymentTermsTemplates"`
}

type draftOrderPaymentTermsData struct {
	DraftOrder *struct {
		ID           string           `json:"id"`
		PaymentTerms *paymentTermsDTO `json:"paymentTerms"`
	} `json:"draftOrder"`
}

type setPaymentTermsData struct {
	DraftOrderUpdate struct {
		DraftOrder *struct {
			ID           string           `json:"id"`
			PaymentTerms *paymentTermsDTO `json:"paymentTerms"`
		} `json:"draftOrder"`
	} `json:"draftOrderUpdate"`
}

type productsData struct {
	Products connection[productDTO] `json:"products"`
}

type locationsData struct {
	CompanyLocations connection[locationDTO] `json:"companyLocations"`
}

// Input DTOs, serialized as GraphQL variables.

type draftOrderInput struct {
	LineItems       []lineItemInput       `json:"lineItems,omitempty"`
	AppliedDiscount *appliedDiscountInput `json:"appliedDiscount,omitempty"`
	ShippingLine    *shippingLineInput    `json:"shippingLine,omitempty"`
	TaxLines        []taxLineInput        `json:"taxLines,omitempty"`
	PaymentTerms    *paymentTermsInput    `json:"paymentTerms,omitempty"`
}

type lineItemInput struct {
	VariantID                     string      `json:"variantId,omitempty"`
	Title                         string      `json:"title,omitempty"`
	Quantity                      int         `json:"quantity"`
	OriginalUnitPriceWithCurrency *moneyInput `json:"originalUnitPriceWithCurrency,omitempty"`
	RequiresShipping              bool        `json:"requiresShipping"`
	Taxable                       bool        `json:"taxable"`
}

type moneyInput struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type appliedDiscountInput struct {
	Description string  `json:"description"`
	ValueType   string  `json:"valueType"`
	Value       float64 `json:"value"`
}

type shippingLineInput struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

type taxLineInput struct {
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Rate  float64         `json:"rate"`
}

type paymentTermsInput struct {
	PaymentTermsTemplateID string `json:"paymentTermsTemplateId"`
}

type metafieldsSetInput struct {
	OwnerID   string `json:"ownerId"`
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Type      string `json:"type"`
	Value     string `json:"value"`
}

type emailInput struct {
	To            string   `json:"to"`
	From          string   `json:"from,omitempty"`
	CC            []string `json:"cc,omitempty"`
	BCC           []string `json:"bcc,omitempty"`
	Subject       string   `json:"subject,omitempty"`
	CustomMessage string   `json:"customMessage,omitempty"`
}
