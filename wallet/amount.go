package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// maxAmountDecimalPlaces caps payment precision. The asset itself may
// carry more decimals on the ledger; the extra digits are reserved so
// rounding differences between platforms can never bite.
const maxAmountDecimalPlaces = 4

// parseAmount converts a decimal string amount to integer base units for
// an asset with the given number of decimals. No floats anywhere. It
// rejects negative amounts and amounts whose fractional part, after
// stripping trailing zeros, exceeds maxAmountDecimalPlaces digits.
func parseAmount(amount string, decimals int) (uint64, error) {
	s := strings.TrimSpace(amount)
	if s == "" {
		return 0, &IllegalAmountError{reason: "amount must not be empty"}
	}
	if strings.HasPrefix(s, "-") {
		return 0, &IllegalAmountError{reason: "amount can't be negative"}
	}
	s = strings.TrimPrefix(s, "+")

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.IndexByte(frac, '.') >= 0 {
			return 0, &IllegalAmountError{reason: "amount is not a valid decimal number"}
		}
	}
	// Inputs like "+" or "." carry no digits at all.
	if whole == "" && frac == "" {
		return 0, &IllegalAmountError{reason: "amount is not a valid decimal number"}
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return 0, &IllegalAmountError{reason: "amount is not a valid decimal number"}
	}

	significant := strings.TrimRight(frac, "0")
	if len(significant) > maxAmountDecimalPlaces {
		return 0, &IllegalAmountError{
			reason: fmt.Sprintf("amount can't have more than %d digits after the decimal point", maxAmountDecimalPlaces),
		}
	}
	if len(significant) > decimals {
		return 0, &IllegalAmountError{
			reason: fmt.Sprintf("amount precision exceeds the asset's %d decimals", decimals),
		}
	}

	// Pad the fractional part out to the asset's decimals and glue the
	// two halves into one base-unit integer.
	padded := significant + strings.Repeat("0", decimals-len(significant))
	combined := strings.TrimLeft(whole+padded, "0")
	if combined == "" {
		return 0, nil
	}
	units, err := strconv.ParseUint(combined, 10, 64)
	if err != nil {
		return 0, &IllegalAmountError{reason: "amount is too large"}
	}
	return units, nil
}

// formatAmount converts integer base units back to a decimal string by
// inserting the decimal point.
// Example: formatAmount(24981836, 6) = "24.981836"
func formatAmount(units uint64, decimals int) string {
	s := strconv.FormatUint(units, 10)
	if decimals == 0 {
		return s
	}
	for len(s) <= decimals {
		s = "0" + s
	}
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
