package dialect

import (
	"fmt"
	"time"
)

// normalize fills layout-level defaults and validates the dialect tables.
func normalize(d *Dialect) error {
	if len(d.BankCode) != 3 {
		return fmt.Errorf("%w: bank code %q must have 3 digits", ErrConfiguration, d.BankCode)
	}
	for i := 0; i < len(d.BankCode); i++ {
		if d.BankCode[i] < '0' || d.BankCode[i] > '9' {
			return fmt.Errorf("%w: bank code %q must be numeric", ErrConfiguration, d.BankCode)
		}
	}
	layout := d.CNABLayout()
	if !layout.Valid() {
		return fmt.Errorf("%w: bank %s: unsupported layout %d", ErrConfiguration, d.BankCode, d.Layout)
	}

	if d.Shipping.OurNumberBase == 0 {
		d.Shipping.OurNumberBase = 9
	}
	if d.Shipping.OurNumberBase < 2 || d.Shipping.OurNumberBase > 9 {
		return fmt.Errorf("%w: bank %s: our number base %d out of range", ErrConfiguration, d.BankCode, d.Shipping.OurNumberBase)
	}

	for _, bound := range []string{d.Shipping.DueDateMin, d.Shipping.DueDateMax} {
		if bound == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", bound); err != nil {
			return fmt.Errorf("%w: bank %s: due date bound %q: %v", ErrConfiguration, d.BankCode, bound, err)
		}
	}

	if len(d.Return.Records) == 0 {
		if layout.Width() == 240 {
			d.Return.Records = standardRecords240()
		} else {
			d.Return.Records = standardRecords400()
		}
	}
	if len(d.Return.ChargingTypes) == 0 {
		d.Return.ChargingTypes = defaultChargingTypes(layout.Width())
	}

	names := make(map[string]bool, len(d.Return.Records))
	for i := range d.Return.Records {
		rec := &d.Return.Records[i]
		if rec.Name == "" {
			return fmt.Errorf("%w: bank %s: record %d has no name", ErrConfiguration, d.BankCode, i)
		}
		if names[rec.Name] {
			return fmt.Errorf("%w: bank %s: duplicate record %q", ErrConfiguration, d.BankCode, rec.Name)
		}
		names[rec.Name] = true
		if len(rec.Match) == 0 {
			return fmt.Errorf("%w: bank %s: record %q declares no match literals", ErrConfiguration, d.BankCode, rec.Name)
		}
		for _, m := range rec.Match {
			if m.Offset < 0 || m.Offset+len(m.Value) > layout.Width() {
				return fmt.Errorf("%w: bank %s: record %q match at %d exceeds width %d", ErrConfiguration, d.BankCode, rec.Name, m.Offset, layout.Width())
			}
		}
		for _, f := range rec.Fields {
			if f.Width <= 0 || f.Offset < 0 || f.Offset+f.Width > layout.Width() {
				return fmt.Errorf("%w: bank %s: record %q field %q exceeds width %d", ErrConfiguration, d.BankCode, rec.Name, f.Name, layout.Width())
			}
		}
	}
	for i := range d.Return.Records {
		rec := &d.Return.Records[i]
		for _, next := range rec.Next {
			if !names[next] {
				return fmt.Errorf("%w: bank %s: record %q lists unknown successor %q", ErrConfiguration, d.BankCode, rec.Name, next)
			}
		}
	}
	if !names[RecordFileHeader] {
		return fmt.Errorf("%w: bank %s: record set lacks %s", ErrConfiguration, d.BankCode, RecordFileHeader)
	}

	for _, m := range d.Shipping.Masks {
		if len(m.Mask) > layout.Width() {
			return fmt.Errorf("%w: bank %s: mask for segment %s movement %s exceeds width %d", ErrConfiguration, d.BankCode, m.Segment, m.Movement, layout.Width())
		}
	}
	return nil
}

func defaultChargingTypes(width int) []ChargingType {
	if width == 240 {
		return []ChargingType{
			{Name: "simple", CountField: "simple_count", ValueField: "simple_value"},
			{Name: "linked", CountField: "linked_count", ValueField: "linked_value"},
			{Name: "secured", CountField: "secured_count", ValueField: "secured_value"},
			{Name: "discounted", CountField: "discounted_count", ValueField: "discounted_value"},
		}
	}
	return []ChargingType{
		{Name: "simple", CountField: "title_count", ValueField: "total_value"},
	}
}
