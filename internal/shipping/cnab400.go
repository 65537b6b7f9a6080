package shipping

import (
	"remessa/internal/fieldfmt"
	"remessa/internal/titles"
)

// CNAB400 record builders: one flat record per title, trailing sequence
// number on every record.

func (e *Encoder) fileHeader400() (string, error) {
	edi := e.assignment.EDICode
	if edi == "" {
		edi = "01"
	}

	r := &recordBuilder{}
	r.lit("0")
	r.lit("1") // shipping direction
	r.lit("REMESSA")
	r.lit("01") // service: collection
	r.alfa("COBRANCA", 15)
	r.num(e.assignment.Covenant, 20)
	r.alfa(e.assignor.Name, 30)
	r.digits(e.d.BankCode, 3)
	r.alfa(e.d.BankName, 15)
	r.date(e.createdAt, fieldfmt.DateDDMMYY)
	r.blank(8)
	r.alfa(edi, 2)
	r.num(int64(e.counter), 7)
	r.blank(277)
	r.num(1, 6)
	return r.build(400)
}

func (e *Encoder) detail400(movement string, t *titles.Title, seq int) (string, error) {
	ourNumber, ourDigit, err := e.ourNumber400(t)
	if err != nil {
		return "", err
	}
	payer := t.Payer
	min, max := e.d.DueDateWindow()

	r := &recordBuilder{}
	r.lit("1")
	r.digits(e.assignment.Agency, 5)
	r.digitsTrim(e.assignment.AgencyDigit, 1)
	r.digits(e.assignment.Account, 12)
	r.digitsTrim(e.assignment.AccountDigit, 1)
	r.alfa(t.DocumentNumber, 25) // company use
	r.lit(ourNumber)
	r.lit(ourDigit)
	r.zeros(10) // contract
	r.blank(2)
	r.digitsTrim(e.assignment.Wallet, 2)
	r.digits(movement, 2)
	r.alfa(t.DocumentNumber, 10)
	r.date(t.DueDateWithin(min, max), fieldfmt.DateDDMMYY)
	r.money(t.Value, 13)
	r.zeros(3) // charging bank, bank-assigned
	r.zeros(5) // charging agency
	r.digitsTrim(t.Specie, 2)
	r.lit("N")
	r.date(t.IssuedAt, fieldfmt.DateDDMMYY)
	r.zeros(2)  // instruction 1
	r.zeros(2)  // instruction 2
	r.zeros(13) // interest per day
	r.date(t.Discount.Date, fieldfmt.DateDDMMYY)
	r.money(t.Discount.Value, 13)
	r.money(t.IOF, 13)
	r.money(t.Rebate, 13)
	r.lit(payerInscription400(payer))
	r.digits(payer.Document, 14)
	r.alfa(payer.Name, 40)
	r.alfa(payer.Street, 40)
	r.alfa(payer.District, 12)
	r.digitsTrim(payer.PostalCode, 8)
	r.alfa(payer.City, 20)
	r.alfa(payer.State, 2)
	r.blank(30) // guarantor
	r.alfa(t.Description, 33)
	r.blank(12)
	r.num(int64(seq), 6)
	return r.build(400)
}

func (e *Encoder) fileTrailer400(seq int) (string, error) {
	r := &recordBuilder{}
	r.lit("9")
	r.blank(393)
	r.num(int64(seq), 6)
	return r.build(400)
}

func payerInscription400(p *titles.Payer) string {
	if len(p.Document) > 11 {
		return "02"
	}
	return "01"
}
