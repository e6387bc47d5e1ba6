package boleto

// Currency describes the monetary unit encoded in the barcode's
// currency digit.
type Currency struct {
	Code    string // ISO 4217 code
	Symbol  string // display symbol, e.g. "R$"
	Decimal string // decimal separator for display
}

// BRL is the only currency the slip layout defines today ('9').
var BRL = Currency{Code: "BRL", Symbol: "R$", Decimal: ","}

// currencyFor resolves a barcode currency digit. The second return
// reports whether the digit maps to a known currency.
func currencyFor(digit byte) (Currency, bool) {
	if digit == '9' {
		return BRL, true
	}
	return Currency{}, false
}
