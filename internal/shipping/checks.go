package shipping

import (
	"fmt"
	"strconv"

	"remessa/internal/checkdigit"
	"remessa/internal/dialect"
	"remessa/internal/fieldfmt"
	"remessa/internal/titles"
)

// checkDigitFor computes the our-number check digit with the dialect's
// mod-11 weight base.
func checkDigitFor(d *dialect.Dialect, digits string) (string, error) {
	dv, err := checkdigit.OurNumber(digits, d.Shipping.OurNumberBase)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fieldfmt.ErrFormat, err)
	}
	return strconv.Itoa(dv), nil
}

func checkdigitAsbace(key string) (string, string, error) {
	cd1, cd2, err := checkdigit.Asbace(key)
	if err != nil {
		return "", "", err
	}
	return strconv.Itoa(cd1), strconv.Itoa(cd2), nil
}

// agencyAccountDigit is the mod-10 check over the padded agency and account.
func agencyAccountDigit(agency, account string) (string, error) {
	dv, err := checkdigit.Mod10(agency + account)
	if err != nil {
		return "", fmt.Errorf("%w: %v", fieldfmt.ErrFormat, err)
	}
	return strconv.Itoa(dv), nil
}

// inscriptionType distinguishes CPF (11 digits) from CNPJ documents.
func inscriptionType(document string) string {
	if len(document) > 11 {
		return "2"
	}
	return "1"
}

// chargeCode renders the tri-state fine/discount kind.
func chargeCode(rule titles.ChargeRule) string {
	switch rule.Kind {
	case titles.ChargeFixed:
		return "1"
	case titles.ChargePercent:
		return "2"
	default:
		return "0"
	}
}
