package checkdigit

import (
	"fmt"
	"strconv"
)

// Mod10 computes the alternating-weight (2,1,2,1,...) digit-sum check digit
// used for agency and account fields. Weights apply right to left; two-digit
// products contribute their digit sum.
func Mod10(digits string) (int, error) {
	if err := validate(digits); err != nil {
		return 0, err
	}
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		product := int(digits[i]-'0') * weight
		if product > 9 {
			product = product/10 + product%10
		}
		sum += product
		if weight == 2 {
			weight = 1
		} else {
			weight = 2
		}
	}
	remainder := sum % 10
	if remainder == 0 {
		return 0, nil
	}
	return 10 - remainder, nil
}

// Mod11 computes the weighted modulo-11 remainder with cyclic weights 2..base
// applied right to left. Callers post-process the remainder per field kind.
func Mod11(digits string, base int) (int, error) {
	if err := validate(digits); err != nil {
		return 0, err
	}
	if base < 2 {
		return 0, fmt.Errorf("mod11 base %d out of range", base)
	}
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += int(digits[i]-'0') * weight
		weight++
		if weight > base {
			weight = 2
		}
	}
	return sum % 11, nil
}

// Barcode derives the single barcode check digit from the Mod11 remainder:
// remainders 0, 1, and 10 map to 1, everything else to 11-r.
func Barcode(digits string) (int, error) {
	r, err := Mod11(digits, 9)
	if err != nil {
		return 0, err
	}
	if r == 0 || r == 1 || r == 10 {
		return 1, nil
	}
	return 11 - r, nil
}

// OurNumber derives the generic "our number" check digit with a per-dialect
// weight base: remainders 0 and 1 map to 0, everything else to |r-11|.
func OurNumber(digits string, base int) (int, error) {
	r, err := Mod11(digits, base)
	if err != nil {
		return 0, err
	}
	if r <= 1 {
		return 0, nil
	}
	return 11 - r, nil
}

// Asbace computes the two check digits of an Asbace composite key. The first
// digit is Mod10 of the key; the second is Mod11 (base 7) of key+cd1. When the
// second remainder lands on 1 the first digit is incremented (9 wraps to 0)
// and the second recomputed; remainders above 1 become 11-r. The retry always
// terminates within ten increments because cd1 cycles through every digit.
func Asbace(key string) (cd1, cd2 int, err error) {
	if err := validate(key); err != nil {
		return 0, 0, err
	}
	cd1, err = Mod10(key)
	if err != nil {
		return 0, 0, err
	}
	for i := 0; i < 10; i++ {
		cd2, err = Mod11(key+strconv.Itoa(cd1), 7)
		if err != nil {
			return 0, 0, err
		}
		if cd2 == 1 {
			cd1++
			if cd1 > 9 {
				cd1 = 0
			}
			continue
		}
		if cd2 > 1 {
			cd2 = 11 - cd2
		}
		return cd1, cd2, nil
	}
	return cd1, cd2, fmt.Errorf("asbace check digits for %q did not settle", key)
}

func validate(digits string) error {
	if digits == "" {
		return fmt.Errorf("empty digit string")
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return fmt.Errorf("digit string %q contains %q", digits, digits[i])
		}
	}
	return nil
}
