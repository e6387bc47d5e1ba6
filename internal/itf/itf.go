// Package itf encodes decimal digit strings as Interleaved 2-of-5 bar
// patterns. The output alphabet is '1' (narrow) and '2' (wide); bars
// and spaces alternate by position, starting with a bar.
package itf

import "strconv"

// weights holds the narrow/wide pattern for each decimal digit. These
// values are the ITF symbology itself; changing any of them produces
// an unscannable barcode.
var weights = [10]string{
	"11221", // 0
	"21112", // 1
	"12112", // 2
	"22111", // 3
	"11212", // 4
	"21211", // 5
	"12211", // 6
	"11122", // 7
	"21121", // 8
	"12121", // 9
}

const (
	startMarker = "1111"
	stopMarker  = "211"
)

// Encode converts a decimal digit string into an ITF bar pattern,
// framed by the start and stop markers. Digits are consumed in pairs;
// the first digit of a pair selects the bar widths and the second the
// space widths, interleaved. A lone trailing digit d encodes as the
// pair (0, d).
func Encode(digits string) string {
	out := make([]byte, 0, len(startMarker)+5*(len(digits)+1)+len(stopMarker))
	out = append(out, startMarker...)

	for i := 0; i < len(digits); i += 2 {
		end := i + 2
		if end > len(digits) {
			end = len(digits)
		}
		v, _ := strconv.Atoi(digits[i:end])
		black := weights[v/10]
		white := weights[v%10]
		for j := 0; j < 5; j++ {
			out = append(out, black[j], white[j])
		}
	}

	return string(append(out, stopMarker...))
}
