// Package boleto decodes and validates the "linha digitável" printed on
// Brazilian bank payment slips and derives the underlying 44-digit
// barcode and its payment fields (bank, currency, amount, due date).
package boleto

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/boddenberg/boleto-decoder-go/internal/domain"
	"github.com/boddenberg/boleto-decoder-go/internal/itf"
	"github.com/boddenberg/boleto-decoder-go/internal/svg"
)

var digitOnlyRegex = regexp.MustCompile(`[^0-9]`)

// dueDateEpoch is the FEBRABAN due-date factor base: 1997-10-07 at
// local noon in the fixed GMT-03:00 reference. Factors are added as
// exact 24h multiples, never via calendar arithmetic.
var dueDateEpoch = time.Date(1997, 10, 7, 12, 0, 0, 0, time.FixedZone("-03:00", -3*60*60))

const lineLength = 47

// Boleto is an immutable, validated printed slip number. Construct it
// with New; every accessor is a pure derivation of the stored digits,
// so a value is safe for concurrent use.
type Boleto struct {
	digits  string // 47 digits, formatting stripped
	barcode string // 44 digits, printed-form fields rearranged
}

// New strips formatting characters from line, validates the 47-digit
// structure and the barcode check digit, and returns the immutable
// slip number. The returned error carries the stripped digit string.
func New(line string) (*Boleto, error) {
	digits := digitOnlyRegex.ReplaceAllString(line, "")
	if len(digits) != lineLength {
		return nil, &domain.ErrInvalidBoleto{
			Digits: digits,
			Reason: fmt.Sprintf("digitable line has %d digits, expected %d", len(digits), lineLength),
		}
	}

	barcode := rearrange(digits)
	if Modulo11(barcode[:4]+barcode[5:]) != int(barcode[4]-'0') {
		return nil, &domain.ErrInvalidBoleto{
			Digits: digits,
			Reason: "barcode check digit mismatch",
		}
	}

	return &Boleto{digits: digits, barcode: barcode}, nil
}

// rearrange converts the 47-digit printed layout into the 44-digit
// barcode layout. The printed form carries per-group check digits at
// positions 9, 20 and 31 that are dropped, and the final 15-digit
// group (due-date factor + amount) moves up behind bank and currency.
func rearrange(digits string) string {
	return digits[0:4] + digits[32:47] + digits[4:9] + digits[10:20] + digits[21:31]
}

// Number returns the raw 47-digit line.
func (b *Boleto) Number() string { return b.digits }

// PrettyNumber formats the line with the standard display mask
// 00000.00000 00000.000000 00000.000000 0 00000000000000.
func (b *Boleto) PrettyNumber() string {
	d := b.digits
	return d[0:5] + "." + d[5:10] + " " +
		d[10:15] + "." + d[15:21] + " " +
		d[21:26] + "." + d[26:32] + " " +
		d[32:33] + " " + d[33:47]
}

// Barcode returns the 44-digit barcode derived from the printed line.
func (b *Boleto) Barcode() string { return b.barcode }

// BankCode returns the 3-digit issuing bank code.
func (b *Boleto) BankCode() string { return b.barcode[0:3] }

// Bank returns the issuing bank's display name, or UnknownBank.
func (b *Boleto) Bank() string { return BankName(b.BankCode()) }

// Currency returns the slip currency. ok is false when the currency
// digit is not a known code.
func (b *Boleto) Currency() (cur Currency, ok bool) {
	return currencyFor(b.barcode[3])
}

// ChecksumDigit returns the embedded barcode check digit, for display.
func (b *Boleto) ChecksumDigit() string { return b.barcode[4:5] }

// ExpirationDate returns the due date: the epoch plus the 4-digit
// due-date factor in days.
func (b *Boleto) ExpirationDate() time.Time {
	days, _ := strconv.Atoi(b.barcode[5:9])
	return dueDateEpoch.Add(time.Duration(days) * 24 * time.Hour)
}

// AmountCents returns the slip value in cents.
func (b *Boleto) AmountCents() int64 {
	cents, _ := strconv.ParseInt(b.barcode[9:19], 10, 64)
	return cents
}

// Amount returns the slip value with exactly two decimal digits.
func (b *Boleto) Amount() string {
	cents := b.AmountCents()
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// PrettyAmount prefixes the currency symbol and swaps in the currency's
// decimal separator. Unknown currencies fall back to the plain amount.
func (b *Boleto) PrettyAmount() string {
	cur, ok := b.Currency()
	if !ok {
		return b.Amount()
	}
	return cur.Symbol + " " + strings.Replace(b.Amount(), ".", cur.Decimal, 1)
}

// FreeField returns the bank-specific 25-digit field, undecoded.
func (b *Boleto) FreeField() string { return b.barcode[19:] }

// ToSVG renders the barcode as an SVG document string. stripeWidth is
// the width of a narrow bar in viewBox units.
func (b *Boleto) ToSVG(stripeWidth int) string {
	return svg.Render(itf.Encode(b.barcode), stripeWidth)
}

// WriteSVG renders the barcode SVG into w.
func (b *Boleto) WriteSVG(w io.Writer, stripeWidth int) error {
	return svg.RenderTo(w, itf.Encode(b.barcode), stripeWidth)
}
