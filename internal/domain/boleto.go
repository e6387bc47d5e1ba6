package domain

// ============================================================
// Boleto API Requests & Responses
// ============================================================

// DecodeRequest is the body of POST /v1/boletos/decode.
type DecodeRequest struct {
	DigitableLine string `json:"digitable_line"`
	IncludeImage  bool   `json:"include_image"`
	StripeWidth   int    `json:"stripe_width,omitempty"`
}

// DecodeBatchRequest is the body of POST /v1/boletos/decode-batch.
type DecodeBatchRequest struct {
	DigitableLines []string `json:"digitable_lines"`
}

// CurrencyInfo describes the slip currency for API responses.
type CurrencyInfo struct {
	Code    string `json:"code"`
	Symbol  string `json:"symbol"`
	Decimal string `json:"decimal"`
}

// BoletoDetails is the fully decoded view of a valid digitable line.
// Currency is null when the currency digit is unknown.
type BoletoDetails struct {
	ID            string        `json:"id"`
	DigitableLine string        `json:"digitableLine"`
	PrettyLine    string        `json:"prettyLine"`
	Barcode       string        `json:"barcode"`
	BankCode      string        `json:"bankCode"`
	BankName      string        `json:"bankName"`
	Currency      *CurrencyInfo `json:"currency"`
	ChecksumDigit string        `json:"checksumDigit"`
	DueDate       string        `json:"dueDate"`
	Amount        string        `json:"amount"`
	PrettyAmount  string        `json:"prettyAmount"`
	Image         string        `json:"image,omitempty"`
}

// ValidationResponse is the body of POST /v1/boletos/validate.
type ValidationResponse struct {
	Valid        bool           `json:"valid"`
	Data         *BoletoDetails `json:"data,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

// BatchItem is one entry of a decode-batch response, in input order.
type BatchItem struct {
	DigitableLine string         `json:"digitable_line"`
	Valid         bool           `json:"valid"`
	Data          *BoletoDetails `json:"data,omitempty"`
	ErrorMessage  string         `json:"error_message,omitempty"`
}

// BankInfo is the response of GET /v1/banks/{code}.
type BankInfo struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ============================================================
// Health & Metrics API Responses
// ============================================================

// HealthStatus is returned by GET /healthz.
type HealthStatus struct {
	Status   string          `json:"status"` // healthy, degraded, unhealthy
	Services []ServiceHealth `json:"services"`
}

// ServiceHealth represents the health of an individual component.
type ServiceHealth struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	LatencyMs   int64  `json:"latencyMs"`
	LastChecked string `json:"lastChecked"`
}

// DecoderMetrics is returned by GET /v1/metrics/decoder.
type DecoderMetrics struct {
	TotalDecodes int64   `json:"totalDecodes"`
	TotalRenders int64   `json:"totalRenders"`
	ErrorRate    float64 `json:"errorRate"`
	CacheHitRate float64 `json:"cacheHitRate"`
	Period       string  `json:"period"`
}
