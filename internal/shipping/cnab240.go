package shipping

import (
	"remessa/internal/fieldfmt"
	"remessa/internal/titles"
)

// CNAB240 record builders. Offsets follow the FEBRABAN layout the standard
// dialect record set declares; the parser reads back what these emit.

func (e *Encoder) fileHeader240() (string, error) {
	agency, err := fieldfmt.PadDigits(e.assignment.Agency, 5)
	if err != nil {
		return "", err
	}
	account, err := fieldfmt.PadDigits(e.assignment.Account, 12)
	if err != nil {
		return "", err
	}
	agAcc, err := agencyAccountDigit(agency, account)
	if err != nil {
		return "", err
	}

	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.lit("0000")
	r.lit("0")
	r.blank(9)
	r.lit(inscriptionType(e.assignor.Document))
	r.digits(e.assignor.Document, 14)
	r.num(e.assignment.Covenant, 20)
	r.lit(agency)
	r.digitsTrim(e.assignment.AgencyDigit, 1)
	r.lit(account)
	r.digitsTrim(e.assignment.AccountDigit, 1)
	r.lit(agAcc)
	r.alfa(e.assignor.Name, 30)
	r.alfa(e.d.BankName, 30)
	r.blank(10)
	r.lit("1") // shipping direction
	r.date(e.createdAt, fieldfmt.DateDDMMYYYY)
	r.date(e.createdAt, fieldfmt.TimeHHMMSS)
	r.num(int64(e.counter), 6)
	r.lit("103")
	r.lit("00000")
	r.blank(69)
	return r.build(240)
}

func (e *Encoder) lotHeader240(lot int) (string, error) {
	agency, err := fieldfmt.PadDigits(e.assignment.Agency, 5)
	if err != nil {
		return "", err
	}
	account, err := fieldfmt.PadDigits(e.assignment.Account, 12)
	if err != nil {
		return "", err
	}
	agAcc, err := agencyAccountDigit(agency, account)
	if err != nil {
		return "", err
	}

	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.num(int64(lot), 4)
	r.lit("1")
	r.lit("R")  // charging operation
	r.lit("01") // service: collection
	r.blank(2)
	r.lit("060")
	r.blank(1)
	r.lit(inscriptionType(e.assignor.Document))
	r.digits(e.assignor.Document, 15)
	r.num(e.assignment.Covenant, 20)
	r.lit(agency)
	r.digitsTrim(e.assignment.AgencyDigit, 1)
	r.lit(account)
	r.digitsTrim(e.assignment.AccountDigit, 1)
	r.lit(agAcc)
	r.alfa(e.assignor.Name, 30)
	r.blank(40) // message 1
	r.blank(40) // message 2
	r.num(int64(e.counter), 8)
	r.date(e.createdAt, fieldfmt.DateDDMMYYYY)
	r.zeros(8) // credit date, bank-filled
	r.blank(33)
	return r.build(240)
}

func (e *Encoder) segmentP(lot, seq int, movement string, t *titles.Title) (string, error) {
	agency, err := fieldfmt.PadDigits(e.assignment.Agency, 5)
	if err != nil {
		return "", err
	}
	account, err := fieldfmt.PadDigits(e.assignment.Account, 12)
	if err != nil {
		return "", err
	}
	agAcc, err := agencyAccountDigit(agency, account)
	if err != nil {
		return "", err
	}
	ourNumber, err := e.ourNumber240(t)
	if err != nil {
		return "", err
	}
	min, max := e.d.DueDateWindow()

	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.num(int64(lot), 4)
	r.lit("3")
	r.num(int64(seq), 5)
	r.lit("P")
	r.blank(1)
	r.digits(movement, 2)
	r.lit(agency)
	r.digitsTrim(e.assignment.AgencyDigit, 1)
	r.lit(account)
	r.digitsTrim(e.assignment.AccountDigit, 1)
	r.lit(agAcc)
	r.lit(ourNumber)
	r.lit("1") // simple charging wallet
	r.lit("1") // registered title
	r.digitsTrim(e.assignment.DocumentKind, 1)
	r.blank(2)
	r.alfa(t.DocumentNumber, 15)
	r.date(t.DueDateWithin(min, max), fieldfmt.DateDDMMYYYY)
	r.money(t.Value, 15)
	r.zeros(5) // charging agency, bank-assigned
	r.zeros(1)
	r.digitsTrim(t.Specie, 2)
	r.lit("N")
	r.date(t.IssuedAt, fieldfmt.DateDDMMYYYY)
	r.lit("3") // interest exempt
	r.zeros(8)
	r.zeros(15)
	r.lit(chargeCode(t.Discount))
	r.date(t.Discount.Date, fieldfmt.DateDDMMYYYY)
	r.money(t.Discount.Value, 15)
	r.money(t.IOF, 15)
	r.money(t.Rebate, 15)
	r.alfa(t.DocumentNumber, 25)
	r.lit("3") // do not protest
	r.lit("00")
	r.lit("1") // write off after due
	r.lit("060")
	r.lit("09") // BRL
	r.zeros(10) // contract
	r.blank(1)
	return r.build(240)
}

func (e *Encoder) segmentQ(lot, seq int, movement string, t *titles.Title) (string, error) {
	payer := t.Payer

	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.num(int64(lot), 4)
	r.lit("3")
	r.num(int64(seq), 5)
	r.lit("Q")
	r.blank(1)
	r.digits(movement, 2)
	r.lit(inscriptionType(payer.Document))
	r.digits(payer.Document, 15)
	r.alfa(payer.Name, 40)
	r.alfa(payer.Street, 40)
	r.alfa(payer.District, 15)
	r.digitsTrim(payer.PostalCode, 8)
	r.alfa(payer.City, 15)
	r.alfa(payer.State, 2)
	r.lit("0") // guarantor inscription: none
	r.zeros(15)
	r.blank(40)
	r.zeros(3)  // corresponding bank
	r.zeros(20) // corresponding our number
	r.blank(8)
	return r.build(240)
}

func (e *Encoder) segmentR(lot, seq int, movement string, t *titles.Title) (string, error) {
	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.num(int64(lot), 4)
	r.lit("3")
	r.num(int64(seq), 5)
	r.lit("R")
	r.blank(1)
	r.digits(movement, 2)
	r.lit(chargeCode(t.Discount2))
	r.date(t.Discount2.Date, fieldfmt.DateDDMMYYYY)
	r.money(t.Discount2.Value, 15)
	r.lit(chargeCode(t.Discount3))
	r.date(t.Discount3.Date, fieldfmt.DateDDMMYYYY)
	r.money(t.Discount3.Value, 15)
	r.lit(chargeCode(t.Fine))
	r.date(t.Fine.Date, fieldfmt.DateDDMMYYYY)
	r.money(t.Fine.Value, 15)
	r.blank(10) // payer message
	r.blank(40)
	r.blank(40)
	r.blank(61)
	return r.build(240)
}

func (e *Encoder) lotTrailer240(lot *lotState) (string, error) {
	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.num(int64(lot.number), 4)
	r.lit("5")
	r.blank(9)
	r.num(int64(lot.records), 6)
	r.num(int64(lot.details), 6)
	r.money(lot.value, 17)
	r.zeros(6) // linked charging
	r.zeros(17)
	r.zeros(6) // secured charging
	r.zeros(17)
	r.zeros(6) // discounted charging
	r.zeros(17)
	r.num(int64(e.counter), 8)
	r.blank(117)
	return r.build(240)
}

func (e *Encoder) fileTrailer240() (string, error) {
	r := &recordBuilder{}
	r.digits(e.d.BankCode, 3)
	r.num(lotSentinel, 4)
	r.lit("9")
	r.blank(9)
	r.num(int64(e.lots), 6)
	r.num(int64(len(e.lines)+1), 6)
	r.zeros(6) // conciliation lots
	r.blank(205)
	return r.build(240)
}
