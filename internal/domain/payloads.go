package domain

// Typed shapes of the extraction payload, one per supported document type.
// They are unmarshalled from ExtractionResult.ExtractedData (or the reviewer's
// corrections) at approval time; amount and date fields stay loosely typed
// because the model may emit them as numbers or as strings carrying currency
// glyphs and localized date forms. normalize.Amount / normalize.Date resolve
// them to canonical values.

// InvoicePayload is the extracted shape of an invoice document.
type InvoicePayload struct {
	InvoiceCode            *string `json:"invoice_code"`
	InvoiceNumber          *string `json:"invoice_number"`
	TotalAmountTaxIncluded any     `json:"total_amount_tax_included"`
}

// ContractPayload is the extracted shape of a contract document.
type ContractPayload struct {
	ContractNo   *string `json:"contract_no"`
	Title        *string `json:"title"`
	PartyA       *string `json:"party_a"`
	PartyB       *string `json:"party_b"`
	TotalAmount  any     `json:"total_amount"`
	StartDate    any     `json:"start_date"`
	EndDate      any     `json:"end_date"`
	ContractType *string `json:"contract_type"`
}

// BankStatementPayload is the extracted shape of a bank statement document.
type BankStatementPayload struct {
	AccountName   *string                  `json:"account_name"`
	AccountNumber *string                  `json:"account_number"`
	BankName      *string                  `json:"bank_name"`
	Currency      *string                  `json:"currency"`
	Transactions  []BankTransactionPayload `json:"transactions"`
}

// BankTransactionPayload is one transaction inside a bank statement payload.
type BankTransactionPayload struct {
	TransactionDate  any     `json:"transaction_date"`
	CounterpartyName *string `json:"counterparty_name"`
	DebitAmount      any     `json:"debit_amount"`
	CreditAmount     any     `json:"credit_amount"`
	Summary          *string `json:"summary"`
}

// PayrollPayload is the extracted shape of a payroll record document.
type PayrollPayload struct {
	EmployeeID      *string `json:"employee_id"`
	PayPeriod       *string `json:"pay_period"`
	BaseSalary      any     `json:"base_salary"`
	PositionSubsidy any     `json:"position_subsidy"`
	TotalDeductions any     `json:"total_deductions"`
	NetPay          any     `json:"net_pay"`
}
