package midtrans

const (
	CoreSandboxBaseURL       = "https://api.sandbox.midtrans.com"
	CoreProductionBaseURL    = "https://api.midtrans.com"
	SnapSandboxBaseURL       = "https://app.sandbox.midtrans.com/snap/v1"
	SnapProductionBaseURL    = "https://app.midtrans.com/snap/v1"
	IrisSandboxBaseURL       = "https://app.sandbox.midtrans.com/iris/api/v1"
	IrisProductionBaseURL    = "https://app.midtrans.com/iris/api/v1"
	InvoiceSandboxBaseURL    = "https://api.sandbox.midtrans.com/v1/invoices"
	InvoiceProductionBaseURL = "https://api.midtrans.com/v1/invoices"
)

// Config is built once at startup and never mutated.
type Config struct {
	ServerKey    string
	ClientKey    string
	IsProduction bool
}

// Validate fails with KindConfiguration when the server key is empty.
func (c Config) Validate() error {
	if c.ServerKey == "" {
		return newError(KindConfiguration, "server key is required", nil)
	}
	return nil
}

func (c Config) CoreAPIBaseURL() string {
	if c.IsProduction {
		return CoreProductionBaseURL
	}
	return CoreSandboxBaseURL
}

func (c Config) SnapAPIBaseURL() string {
	if c.IsProduction {
		return SnapProductionBaseURL
	}
	return SnapSandboxBaseURL
}

func (c Config) InvoiceAPIBaseURL() string {
	if c.IsProduction {
		return InvoiceProductionBaseURL
	}
	return InvoiceSandboxBaseURL
}

func (c Config) IrisAPIBaseURL() string {
	if c.IsProduction {
		return IrisProductionBaseURL
	}
	return IrisSandboxBaseURL
}
