package dialect

// Canonical record type names shared by the standard layouts, the parser
// state machine, and the extractor.
const (
	RecordFileHeader  = "file_header"
	RecordLotHeader   = "lot_header"
	RecordDetailT     = "title_detail_T"
	RecordDetailU     = "title_detail_U"
	RecordDetail      = "title_detail"
	RecordLotTrailer  = "lot_trailer"
	RecordFileTrailer = "file_trailer"
)

// standardRecords240 is the FEBRABAN CNAB240 return record set. Record type
// lives at column 8 (offset 7); detail segments carry their segment letter at
// offset 13. The successor sets disambiguate structurally similar lines.
func standardRecords240() []Record {
	return []Record{
		{
			Name:  RecordFileHeader,
			Match: []Match{{Offset: 7, Value: "0"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 0, Width: 3},
				{Name: "inscription_number", Offset: 18, Width: 14},
				{Name: "covenant", Offset: 32, Width: 20},
				{Name: "agency", Offset: 52, Width: 5},
				{Name: "agency_digit", Offset: 57, Width: 1},
				{Name: "account", Offset: 58, Width: 12},
				{Name: "account_digit", Offset: 70, Width: 1},
				{Name: "company_name", Offset: 72, Width: 30},
				{Name: "bank_name", Offset: 102, Width: 30},
				{Name: "direction", Offset: 142, Width: 1},
				{Name: "generated_at", Offset: 143, Width: 8},
				{Name: "file_sequence", Offset: 157, Width: 6},
			},
			Next: []string{RecordLotHeader},
		},
		{
			Name:  RecordLotHeader,
			Match: []Match{{Offset: 7, Value: "1"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 0, Width: 3},
				{Name: "lot", Offset: 3, Width: 4},
				{Name: "inscription_number", Offset: 18, Width: 15},
				{Name: "covenant", Offset: 33, Width: 20},
				{Name: "agency", Offset: 53, Width: 5},
				{Name: "agency_digit", Offset: 58, Width: 1},
				{Name: "account", Offset: 59, Width: 12},
				{Name: "account_digit", Offset: 71, Width: 1},
				{Name: "company_name", Offset: 73, Width: 30},
				{Name: "shipping_number", Offset: 183, Width: 8},
				{Name: "shipping_date", Offset: 191, Width: 8},
			},
			Next: []string{RecordDetailT, RecordDetailU, RecordLotTrailer},
		},
		{
			Name:  RecordDetailT,
			Match: []Match{{Offset: 7, Value: "3"}, {Offset: 13, Value: "T"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 0, Width: 3},
				{Name: "lot", Offset: 3, Width: 4},
				{Name: "sequence", Offset: 8, Width: 5},
				{Name: "movement", Offset: 15, Width: 2},
				{Name: "agency", Offset: 17, Width: 5},
				{Name: "agency_digit", Offset: 22, Width: 1},
				{Name: "account", Offset: 23, Width: 12},
				{Name: "account_digit", Offset: 35, Width: 1},
				{Name: "our_number", Offset: 37, Width: 20},
				{Name: "wallet", Offset: 57, Width: 1},
				{Name: "document_number", Offset: 58, Width: 15},
				{Name: "due_date", Offset: 73, Width: 8},
				{Name: "value", Offset: 81, Width: 15},
				{Name: "charging_bank", Offset: 96, Width: 3},
				{Name: "charging_agency", Offset: 99, Width: 5},
				{Name: "company_use", Offset: 105, Width: 25},
				{Name: "specie", Offset: 130, Width: 2},
				{Name: "tariff", Offset: 132, Width: 15},
				{Name: "occurrence_codes", Offset: 147, Width: 10},
			},
			Next: []string{RecordDetailU, RecordDetailT, RecordLotTrailer},
		},
		{
			Name:  RecordDetailU,
			Match: []Match{{Offset: 7, Value: "3"}, {Offset: 13, Value: "U"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 0, Width: 3},
				{Name: "lot", Offset: 3, Width: 4},
				{Name: "sequence", Offset: 8, Width: 5},
				{Name: "movement", Offset: 15, Width: 2},
				{Name: "accruals", Offset: 17, Width: 15},
				{Name: "discount", Offset: 32, Width: 15},
				{Name: "rebate", Offset: 47, Width: 15},
				{Name: "iof", Offset: 62, Width: 15},
				{Name: "value_paid", Offset: 77, Width: 15},
				{Name: "net_credit", Offset: 92, Width: 15},
				{Name: "other_expenses", Offset: 107, Width: 15},
				{Name: "other_credits", Offset: 122, Width: 15},
				{Name: "occurrence_date", Offset: 137, Width: 8},
				{Name: "credit_date", Offset: 145, Width: 8},
			},
			Next: []string{RecordDetailT, RecordLotTrailer},
		},
		{
			Name:  RecordLotTrailer,
			Match: []Match{{Offset: 7, Value: "5"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 0, Width: 3},
				{Name: "lot", Offset: 3, Width: 4},
				{Name: "lot_registry_count", Offset: 17, Width: 6},
				{Name: "simple_count", Offset: 23, Width: 6},
				{Name: "simple_value", Offset: 29, Width: 17},
				{Name: "linked_count", Offset: 46, Width: 6},
				{Name: "linked_value", Offset: 52, Width: 17},
				{Name: "secured_count", Offset: 69, Width: 6},
				{Name: "secured_value", Offset: 75, Width: 17},
				{Name: "discounted_count", Offset: 92, Width: 6},
				{Name: "discounted_value", Offset: 98, Width: 17},
				{Name: "shipping_number", Offset: 115, Width: 8},
			},
			Next: []string{RecordLotHeader, RecordFileTrailer},
		},
		{
			Name:  RecordFileTrailer,
			Match: []Match{{Offset: 7, Value: "9"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 0, Width: 3},
				{Name: "lot_count", Offset: 17, Width: 6},
				{Name: "registry_count", Offset: 23, Width: 6},
			},
			Next: nil,
		},
	}
}

// standardRecords400 is the classic CNAB400 return record set: one header,
// one flat detail per title, one trailer. Record type lives at offset 0.
func standardRecords400() []Record {
	return []Record{
		{
			Name:  RecordFileHeader,
			Match: []Match{{Offset: 0, Value: "0"}, {Offset: 1, Value: "2"}},
			Fields: []Field{
				{Name: "covenant", Offset: 26, Width: 20},
				{Name: "company_name", Offset: 46, Width: 30},
				{Name: "bank_code", Offset: 76, Width: 3},
				{Name: "bank_name", Offset: 79, Width: 15},
				{Name: "generated_at", Offset: 94, Width: 6},
				{Name: "sequence", Offset: 394, Width: 6},
			},
			Next: []string{RecordDetail, RecordFileTrailer},
		},
		{
			Name:  RecordDetail,
			Match: []Match{{Offset: 0, Value: "1"}},
			Fields: []Field{
				{Name: "inscription_number", Offset: 3, Width: 14},
				{Name: "agency", Offset: 17, Width: 5},
				{Name: "agency_digit", Offset: 22, Width: 1},
				{Name: "account", Offset: 23, Width: 12},
				{Name: "account_digit", Offset: 35, Width: 1},
				{Name: "company_use", Offset: 37, Width: 25},
				{Name: "our_number", Offset: 62, Width: 11},
				{Name: "our_number_digit", Offset: 73, Width: 1},
				{Name: "wallet", Offset: 82, Width: 2},
				{Name: "movement", Offset: 84, Width: 2},
				{Name: "occurrence_date", Offset: 86, Width: 6},
				{Name: "document_number", Offset: 92, Width: 10},
				{Name: "due_date", Offset: 102, Width: 6},
				{Name: "value", Offset: 108, Width: 13},
				{Name: "charging_bank", Offset: 121, Width: 3},
				{Name: "charging_agency", Offset: 124, Width: 5},
				{Name: "specie", Offset: 129, Width: 2},
				{Name: "tariff", Offset: 131, Width: 13},
				{Name: "other_expenses", Offset: 144, Width: 13},
				{Name: "interest", Offset: 157, Width: 13},
				{Name: "iof", Offset: 170, Width: 13},
				{Name: "rebate", Offset: 183, Width: 13},
				{Name: "discount", Offset: 196, Width: 13},
				{Name: "value_paid", Offset: 209, Width: 13},
				{Name: "accruals", Offset: 222, Width: 13},
				{Name: "other_credits", Offset: 235, Width: 13},
				{Name: "credit_date", Offset: 248, Width: 6},
				{Name: "occurrence_codes", Offset: 254, Width: 10},
				{Name: "sequence", Offset: 394, Width: 6},
			},
			Next: []string{RecordDetail, RecordFileTrailer},
		},
		{
			Name:  RecordFileTrailer,
			Match: []Match{{Offset: 0, Value: "9"}, {Offset: 1, Value: "2"}},
			Fields: []Field{
				{Name: "bank_code", Offset: 4, Width: 3},
				{Name: "title_count", Offset: 17, Width: 8},
				{Name: "total_value", Offset: 25, Width: 14},
				{Name: "sequence", Offset: 394, Width: 6},
			},
			Next: nil,
		},
	}
}

// StartRecords is the legal set before any line has matched.
var StartRecords = []string{RecordFileHeader}
