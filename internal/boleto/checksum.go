package boleto

// Modulo11 computes the FEBRABAN check digit for a sequence of decimal
// digit characters. Weights cycle 2..9 starting from the last digit.
// The valid check-digit alphabet excludes 0: both 0 and 10 map to 1,
// so the result is always in 1..9. The empty sequence yields 1.
func Modulo11(digits string) int {
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += weight * int(digits[i]-'0')
		if weight == 9 {
			weight = 2
		} else {
			weight++
		}
	}

	d := (11 - sum%11) % 10
	if d == 0 {
		return 1
	}
	return d
}
