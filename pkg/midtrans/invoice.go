package midtrans

import "context"

// Invoice wraps the Invoice API.
type Invoice struct {
	client *Client
}

// CreateInvoice accepts an InvoiceRequest, a map or a JSON string.
func (i *Invoice) CreateInvoice(ctx context.Context, params any) (*InvoiceResponse, error) {
	var res InvoiceResponse
	raw, err := i.client.post(ctx, i.client.config.InvoiceAPIBaseURL(), params, &res)
	if err != nil {
		return nil, err
	}
	res.Raw = raw
	return &res, nil
}

func (i *Invoice) CreateInvoicePaymentLink(ctx context.Context, params any) (string, error) {
	res, err := i.CreateInvoice(ctx, params)
	if err != nil {
		return "", err
	}
	return res.PaymentLinkURL, nil
}

func (i *Invoice) CreateInvoicePDFURL(ctx context.Context, params any) (string, error) {
	res, err := i.CreateInvoice(ctx, params)
	if err != nil {
		return "", err
	}
	return res.PDFURL, nil
}
