package midtrans

import (
	"bytes"
	"encoding/json"
)

type EnabledPayment string

const (
	PaymentCreditCard EnabledPayment = "credit_card"
	PaymentEchannel   EnabledPayment = "echannel"
	PaymentPermataVA  EnabledPayment = "permata_va"
	PaymentBCAVA      EnabledPayment = "bca_va"
	PaymentBNIVA      EnabledPayment = "bni_va"
	PaymentBRIVA      EnabledPayment = "bri_va"
	PaymentCIMBVA     EnabledPayment = "cimb_va"
	PaymentGopay      EnabledPayment = "gopay"
	PaymentShopeePay  EnabledPayment = "shopeepay"
	PaymentAlfamart   EnabledPayment = "alfamart"
	PaymentIndomaret  EnabledPayment = "indomaret"
	PaymentAkulaku    EnabledPayment = "akulaku"
	PaymentKredivo    EnabledPayment = "kredivo"
)

// Snap request

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type Expiry struct {
	StartTime string `json:"start_time,omitempty"`
	Unit      string `json:"unit"`
	Duration  int    `json:"duration"`
}

type ItemDetails struct {
	ID           string `json:"id,omitempty"`
	Price        int64  `json:"price"`
	Quantity     int    `json:"quantity"`
	Name         string `json:"name"`
	Brand        string `json:"brand,omitempty"`
	Category     string `json:"category,omitempty"`
	MerchantName string `json:"merchant_name,omitempty"`
	URL          string `json:"url,omitempty"`
}

type Address struct {
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

type CustomerDetails struct {
	FirstName       string   `json:"first_name,omitempty"`
	LastName        string   `json:"last_name,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	BillingAddress  *Address `json:"billing_address,omitempty"`
	ShippingAddress *Address `json:"shipping_address,omitempty"`
}

type Installment struct {
	Required bool             `json:"required,omitempty"`
	Terms    map[string][]int `json:"terms,omitempty"`
}

type DynamicDescriptor struct {
	MerchantName string `json:"merchant_name,omitempty"`
	CityName     string `json:"city_name,omitempty"`
	CountryCode  string `json:"country_code,omitempty"`
}

type CreditCard struct {
	SaveCard          bool               `json:"save_card,omitempty"`
	Secure            bool               `json:"secure,omitempty"`
	Channel           string             `json:"channel,omitempty"`
	Bank              string             `json:"bank,omitempty"`
	Installment       *Installment       `json:"installment,omitempty"`
	WhitelistBins     []string           `json:"whitelist_bins,omitempty"`
	DynamicDescriptor *DynamicDescriptor `json:"dynamic_descriptor,omitempty"`
}

type Callbacks struct {
	Finish string `json:"finish,omitempty"`
	Error  string `json:"error,omitempty"`
}

type FreeText struct {
	EN string `json:"en"`
	ID string `json:"id"`
}

type VAFreeText struct {
	Inquiry []FreeText `json:"inquiry,omitempty"`
	Payment []FreeText `json:"payment,omitempty"`
}

type BCAVA struct {
	VANumber       string      `json:"va_number,omitempty"`
	SubCompanyCode string      `json:"sub_company_code,omitempty"`
	FreeText       *VAFreeText `json:"free_text,omitempty"`
}

type PermataVA struct {
	VANumber      string `json:"va_number,omitempty"`
	RecipientName string `json:"recipient_name,omitempty"`
}

type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	ItemDetails        []ItemDetails      `json:"item_details,omitempty"`
	CustomerDetails    *CustomerDetails   `json:"customer_details,omitempty"`
	EnabledPayments    []EnabledPayment   `json:"enabled_payments,omitempty"`
	CreditCard         *CreditCard        `json:"credit_card,omitempty"`
	BCAVA              *BCAVA             `json:"bca_va,omitempty"`
	PermataVA          *PermataVA         `json:"permata_va,omitempty"`
	Callbacks          *Callbacks         `json:"callbacks,omitempty"`
	Expiry             *Expiry            `json:"expiry,omitempty"`
}

type SnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`

	Raw Payload `json:"-"`
}

// Core API responses

type RefundDetail struct {
	RefundChargebackID json.Number `json:"refund_chargeback_id"`
	RefundAmount       json.Number `json:"refund_amount"`
	CreatedAt          string      `json:"created_at"`
	Reason             string      `json:"reason"`
}

type TransactionStatusResponse struct {
	StatusCode               string         `json:"status_code"`
	StatusMessage            string         `json:"status_message"`
	TransactionID            string         `json:"transaction_id"`
	OrderID                  string         `json:"order_id"`
	GrossAmount              json.Number    `json:"gross_amount"`
	PaymentType              string         `json:"payment_type"`
	TransactionTime          string         `json:"transaction_time"`
	TransactionStatus        string         `json:"transaction_status"`
	FraudStatus              string         `json:"fraud_status,omitempty"`
	ApprovalCode             string         `json:"approval_code,omitempty"`
	SignatureKey             string         `json:"signature_key,omitempty"`
	Bank                     string         `json:"bank,omitempty"`
	MaskedCard               string         `json:"masked_card,omitempty"`
	ChannelResponseCode      string         `json:"channel_response_code,omitempty"`
	ChannelResponseMessage   string         `json:"channel_response_message,omitempty"`
	CardType                 string         `json:"card_type,omitempty"`
	PaymentOptionType        string         `json:"payment_option_type,omitempty"`
	ShopeepayReferenceNumber string         `json:"shopeepay_reference_number,omitempty"`
	ReferenceID              string         `json:"reference_id,omitempty"`
	RefundAmount             json.Number    `json:"refund_amount,omitempty"`
	Refunds                  []RefundDetail `json:"refunds,omitempty"`

	// Raw is the full response, including fields not named above.
	Raw Payload `json:"-"`
}

type CancelTransactionResponse struct {
	StatusCode        string      `json:"status_code"`
	StatusMessage     string      `json:"status_message"`
	TransactionID     string      `json:"transaction_id"`
	MaskedCard        string      `json:"masked_card,omitempty"`
	OrderID           string      `json:"order_id"`
	PaymentType       string      `json:"payment_type"`
	TransactionTime   string      `json:"transaction_time"`
	TransactionStatus string      `json:"transaction_status"`
	FraudStatus       string      `json:"fraud_status,omitempty"`
	Bank              string      `json:"bank,omitempty"`
	GrossAmount       json.Number `json:"gross_amount"`

	Raw Payload `json:"-"`
}

type RefundRequest struct {
	RefundKey string `json:"refund_key,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Invoice API

type InvoiceItem struct {
	ItemID      string `json:"item_id,omitempty"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	Price       int64  `json:"price"`
}

type InvoiceCustomer struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type AmountDetails struct {
	VAT      string `json:"vat"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping,omitempty"`
}

type VirtualAccount struct {
	Name   string `json:"name"`
	Number string `json:"number,omitempty"`
}

type VANumber struct {
	Number   string      `json:"number"`
	FreeText *VAFreeText `json:"free_text,omitempty"`
}

type PaymentLinkOptions struct {
	IsCustomExpiry  bool        `json:"is_custom_expiry,omitempty"`
	EnabledPayments []string    `json:"enabled_payments"`
	CreditCard      *CreditCard `json:"credit_card,omitempty"`
	BCAVA           *VANumber   `json:"bca_va,omitempty"`
	BNIVA           *VANumber   `json:"bni_va,omitempty"`
	PermataVA       *PermataVA  `json:"permata_va,omitempty"`
	BRIVA           *VANumber   `json:"bri_va,omitempty"`
	CIMBVA          *VANumber   `json:"cimb_va,omitempty"`
	Expiry          *Expiry     `json:"expiry,omitempty"`
}

type InvoiceRequest struct {
	OrderID         string              `json:"order_id"`
	InvoiceNumber   string              `json:"invoice_number"`
	DueDate         string              `json:"due_date"`
	InvoiceDate     string              `json:"invoice_date"`
	CustomerDetails InvoiceCustomer     `json:"customer_details"`
	PaymentType     string              `json:"payment_type"`
	Reference       string              `json:"reference,omitempty"`
	ItemDetails     []InvoiceItem       `json:"item_details"`
	Notes           string              `json:"notes,omitempty"`
	PaymentLink     *PaymentLinkOptions `json:"payment_link,omitempty"`
	VirtualAccounts []VirtualAccount    `json:"virtual_accounts,omitempty"`
	Amount          *AmountDetails      `json:"amount,omitempty"`
}

type InvoiceResponse struct {
	ID              string           `json:"id"`
	OrderID         string           `json:"order_id"`
	InvoiceNumber   string           `json:"invoice_number"`
	PublishedDate   string           `json:"published_date"`
	DueDate         string           `json:"due_date"`
	InvoiceDate     string           `json:"invoice_date"`
	Reference       string           `json:"reference,omitempty"`
	CustomerDetails InvoiceCustomer  `json:"customer_details"`
	ItemDetails     []InvoiceItem    `json:"item_details"`
	Status          string           `json:"status"`
	GrossAmount     json.Number      `json:"gross_amount"`
	PDFURL          string           `json:"pdf_url"`
	PaymentType     string           `json:"payment_type"`
	VirtualAccounts []VirtualAccount `json:"virtual_accounts"`
	PaymentLinkURL  string           `json:"payment_link_url"`

	Raw Payload `json:"-"`
}

// WebhookBody is the typed view of a notification. Fields the gateway adds
// later land in Extra.
type WebhookBody struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status,omitempty"`
	SettlementTime    string `json:"settlement_time,omitempty"`
	Currency          string `json:"currency"`

	Extra map[string]any `json:"-"`
}

var webhookBodyKeys = map[string]struct{}{
	"transaction_time": {}, "transaction_status": {}, "transaction_id": {},
	"status_message": {}, "status_code": {}, "signature_key": {},
	"payment_type": {}, "order_id": {}, "merchant_id": {}, "gross_amount": {},
	"fraud_status": {}, "settlement_time": {}, "currency": {},
}

func (w *WebhookBody) UnmarshalJSON(b []byte) error {
	type plain WebhookBody
	var known plain
	if err := json.Unmarshal(b, &known); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var all map[string]any
	if err := dec.Decode(&all); err != nil {
		return err
	}

	*w = WebhookBody(known)
	for k, v := range all {
		if _, ok := webhookBodyKeys[k]; ok {
			continue
		}
		if w.Extra == nil {
			w.Extra = make(map[string]any)
		}
		w.Extra[k] = v
	}
	return nil
}
