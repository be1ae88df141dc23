package parser

// SystemPrompt frames the model as a financial document analyst.
const SystemPrompt = `You are a financial document analyst. You classify scanned Chinese financial documents and extract their data into structured JSON. You reply with JSON only.`

// BuildExtractionPrompt returns the combined classification and extraction
// prompt. The model must reply with a {"type","data"} envelope where "data"
// follows the per-type schema.
func BuildExtractionPrompt() string {
	return `Analyze the provided document image. First classify it as one of: "invoice", "contract", "bank_statement", "payroll_record", or "other" if it matches none of these.

Then extract the document's data according to its type.

Return ONLY valid JSON with no markdown formatting, no code fences, no explanation, just a raw JSON object with two top-level keys:
{
  "type": "<the classification>",
  "data": { <the type-specific fields below> }
}

For "invoice", the "data" object must follow this schema:
{
  "invoice_code": "",
  "invoice_number": "",
  "total_amount_tax_included": 0
}

For "contract":
{
  "contract_no": "",
  "title": "",
  "party_a": "",
  "party_b": "",
  "total_amount": 0,
  "start_date": "",
  "end_date": "",
  "contract_type": ""
}

For "bank_statement":
{
  "account_name": "",
  "account_number": "",
  "bank_name": "",
  "currency": "",
  "transactions": [
    {
      "transaction_date": "",
      "counterparty_name": "",
      "debit_amount": 0,
      "credit_amount": 0,
      "summary": ""
    }
  ]
}
Extract EVERY transaction row. Do not skip, summarize, or omit any rows.

For "payroll_record":
{
  "employee_id": "",
  "pay_period": "",
  "base_salary": 0,
  "position_subsidy": 0,
  "total_deductions": 0,
  "net_pay": 0
}

For "other", "data" may be an empty object.

Dates should be in YYYY-MM-DD format where possible; keep the original text if you cannot convert it. Amounts may be returned as numbers or as the original text including currency symbols. If a field is not present in the document, use null.`
}
