package document

import "strings"

// Brazilian taxpayer documents: CPF (11 digits, individuals) and CNPJ
// (14 digits, companies). Both carry two mod-11 check digits.
//
// Validation here is purely local; a document that fails never reaches the
// payment gateway.

var cnpjFirstWeights = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
var cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// Normalize strips everything that is not a decimal digit.
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPF reports whether s is a valid CPF after normalization.
// Sequences of a single repeated digit (e.g. "00000000000") satisfy the
// checksum arithmetic but are not real documents and are rejected.
func IsValidCPF(s string) bool {
	d := Normalize(s)
	if len(d) != 11 || allSameDigit(d) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(d[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(d[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(d[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(d[10]-'0')
}

// IsValidCNPJ reports whether s is a valid CNPJ after normalization.
func IsValidCNPJ(s string) bool {
	d := Normalize(s)
	if len(d) != 14 || allSameDigit(d) {
		return false
	}

	sum := 0
	for i, w := range cnpjFirstWeights {
		sum += int(d[i]-'0') * w
	}
	if checkDigit(sum) != int(d[12]-'0') {
		return false
	}

	sum = 0
	for i, w := range cnpjSecondWeights {
		sum += int(d[i]-'0') * w
	}
	return checkDigit(sum) == int(d[13]-'0')
}

// IsValid dispatches by normalized length: 11 digits validate as CPF,
// 14 as CNPJ, anything else is invalid.
func IsValid(s string) bool {
	switch len(Normalize(s)) {
	case 11:
		return IsValidCPF(s)
	case 14:
		return IsValidCNPJ(s)
	default:
		return false
	}
}

// SelectBillingDocument picks the document used for gateway billing.
// The company document wins when valid; otherwise the personal one is tried.
// Empty return signals an unrecoverable validation error upstream.
func SelectBillingDocument(cnpj, cpf string) string {
	if Normalize(cnpj) != "" && IsValidCNPJ(cnpj) {
		return Normalize(cnpj)
	}
	if IsValidCPF(cpf) {
		return Normalize(cpf)
	}
	return ""
}

// checkDigit applies the shared mod-11 rule: 11 - (sum mod 11), with
// results >= 10 mapped to 0.
func checkDigit(sum int) int {
	d := 11 - sum%11
	if d >= 10 {
		return 0
	}
	return d
}

func allSameDigit(d string) bool {
	for i := 1; i < len(d); i++ {
		if d[i] != d[0] {
			return false
		}
	}
	return true
}
