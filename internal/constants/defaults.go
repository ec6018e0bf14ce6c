package constants

// Constant name keys used across the heuristic bank. Grouped by concern;
// the dotted names mirror the structure of the external YAML file.
const (
	// Inflation indices (escalation order, Table D.571)
	KeyCPIPrev    = "inflation.cpi.previous"
	KeyCPICurrent = "inflation.cpi.current"
	KeyWPIPrev    = "inflation.wpi.previous"
	KeyWPICurrent = "inflation.wpi.current"
	KeyCPIWeight  = "inflation.cpi_weight"
	KeyWPIWeight  = "inflation.wpi_weight"
	KeyInflFY2223 = "inflation.weighted.2022-23"
	KeyInflFY2324 = "inflation.weighted.2023-24"
	KeyInflFY2425 = "inflation.weighted.2024-25"

	// O&M norms (MYT order)
	KeyOMBaseYear    = "om.base_year"
	KeyOMRatioEmp    = "om.ratio.employee"
	KeyOMRatioAG     = "om.ratio.ag"
	KeyOMRatioRM     = "om.ratio.rm"
	KeyOMPayRevision = "om.pay_revision_implemented"

	// Return on equity
	KeyROERate       = "roe.rate"
	KeyROEEquityBase = "roe.equity_base"

	// Depreciation rates (expert-supplied approximation, see constants file)
	KeyDepRatePre2011  = "depreciation.rate_pre_2011"
	KeyDepRatePost2011 = "depreciation.rate_post_2011"

	// Long-term loans (petition loan schedule)
	KeyLoanOpening    = "loan.opening"
	KeyLoanAdditions  = "loan.additions"
	KeyLoanRepayments = "loan.repayments"
	KeyLoanClosing    = "loan.closing"
	KeyLoanAvgRate    = "loan.avg_rate"

	// Working capital interest
	KeyIWCRate            = "iwc.rate"
	KeyGFAOpeningExclLand = "gfa.opening_excl_land"

	// General provident fund
	KeyGPFRate            = "gpf.rate"
	KeyGPFAllocationRatio = "gpf.allocation_ratio"
	KeyGPFOpening         = "gpf.opening"
	KeyGPFClosing         = "gpf.closing"

	// Master trust bonds
	KeyMTBondCompanyTotal = "mtbond.company_total"
	KeyEmployeeRatio      = "sbu.employee_ratio"

	// Non-tariff income
	KeyNTIBaseline = "nti.baseline"

	// Staff verification inputs for bounded-claim heuristics (0 or 1)
	KeyIntangDocs     = "intangibles.docs_provided"
	KeyOtherFloodDocs = "other.flood_docs_provided"
	KeyOtherWriteoffs = "other.writeoff_orders_provided"
	KeyExcAccountCode = "exceptional.separate_account_code"
	KeyExcDocs        = "exceptional.docs_provided"
)

// Defaults returns the built-in FY 2024-25 constants set. Values are
// updated each tariff year; callers may replace the whole set with
// LoadFile or adjust individual values with Registry.With.
func Defaults() *Registry {
	entries := map[string]Constant{
		KeyCPIPrev:    {Value: 397.25, Unit: "index", Source: "Table D.571, CPI-IW FY 2023-24"},
		KeyCPICurrent: {Value: 410.64, Unit: "index", Source: "Table D.571, CPI-IW FY 2024-25"},
		KeyWPIPrev:    {Value: 151.40, Unit: "index", Source: "Table D.571, WPI FY 2023-24"},
		KeyWPICurrent: {Value: 154.90, Unit: "index", Source: "Table D.571, WPI FY 2024-25"},
		KeyCPIWeight:  {Value: 0.70, Unit: "ratio", Source: "O&M escalation weights, tariff regulations"},
		KeyWPIWeight:  {Value: 0.30, Unit: "ratio", Source: "O&M escalation weights, tariff regulations"},
		KeyInflFY2223: {Value: 7.06, Unit: "percent", Source: "Table D.571, weighted inflation FY 2022-23"},
		KeyInflFY2324: {Value: 3.41, Unit: "percent", Source: "Table D.571, weighted inflation FY 2023-24"},
		KeyInflFY2425: {Value: 3.05, Unit: "percent", Source: "Table D.571, weighted inflation FY 2024-25"},

		KeyOMBaseYear:    {Value: 156.16, Unit: "crore", Source: "TU order dated 14.06.2022, base year 2021-22"},
		KeyOMRatioEmp:    {Value: 0.7703, Unit: "ratio", Source: "MYT Order 2022, Table 4.23"},
		KeyOMRatioAG:     {Value: 0.0432, Unit: "ratio", Source: "MYT Order 2022, Table 4.23"},
		KeyOMRatioRM:     {Value: 0.1865, Unit: "ratio", Source: "MYT Order 2022, Table 4.23"},
		KeyOMPayRevision: {Value: 0, Unit: "flag", Source: "staff verification input"},

		KeyROERate:       {Value: 0.14, Unit: "ratio", Source: "Tariff Regulations, Regulation 28"},
		KeyROEEquityBase: {Value: 831.27, Unit: "crore", Source: "audited balance sheet, equity capital"},

		KeyDepRatePre2011:  {Value: 0.0180, Unit: "ratio", Source: "expert-supplied approximation, assets aged 13-30 years"},
		KeyDepRatePost2011: {Value: 0.0528, Unit: "ratio", Source: "expert-supplied approximation, assets below 13 years"},

		KeyLoanOpening:    {Value: 1273.68, Unit: "crore", Source: "Petition Table 5.3, opening 01.04.2024"},
		KeyLoanAdditions:  {Value: 278.14, Unit: "crore", Source: "Petition Table 5.3"},
		KeyLoanRepayments: {Value: 296.27, Unit: "crore", Source: "Petition Table 5.3"},
		KeyLoanClosing:    {Value: 1255.55, Unit: "crore", Source: "Petition Table 5.3, closing 31.03.2025"},
		KeyLoanAvgRate:    {Value: 8.84, Unit: "percent", Source: "Petition Table 5.3, weighted average"},

		KeyIWCRate:            {Value: 9.55, Unit: "percent", Source: "SBI EBLR 7.55% + 2% per Regulation 32(2)"},
		KeyGFAOpeningExclLand: {Value: 6315.0, Unit: "crore", Source: "derived from MYT working-capital requirement FY 2024-25"},

		KeyGPFRate:            {Value: 7.10, Unit: "percent", Source: "GPF interest rate, confirmed"},
		KeyGPFAllocationRatio: {Value: 5.40, Unit: "percent", Source: "generation employee-strength ratio"},
		KeyGPFOpening:         {Value: 3364.32, Unit: "crore", Source: "MYT Order, company GPF opening FY 2024-25"},
		KeyGPFClosing:         {Value: 3454.32, Unit: "crore", Source: "MYT Order, company GPF closing FY 2024-25"},

		KeyMTBondCompanyTotal: {Value: 529.36, Unit: "crore", Source: "Master Trust bond schedule FY 2024-25"},
		KeyEmployeeRatio:      {Value: 5.40, Unit: "percent", Source: "generation employee-strength ratio"},

		KeyNTIBaseline: {Value: 11.35, Unit: "crore", Source: "MYT Order 2022, Table 4.61, FY 2024-25"},

		KeyIntangDocs:     {Value: 0, Unit: "flag", Source: "staff verification input"},
		KeyOtherFloodDocs: {Value: 0, Unit: "flag", Source: "staff verification input"},
		KeyOtherWriteoffs: {Value: 0, Unit: "flag", Source: "staff verification input"},
		KeyExcAccountCode: {Value: 0, Unit: "flag", Source: "staff verification input"},
		KeyExcDocs:        {Value: 0, Unit: "flag", Source: "staff verification input"},
	}
	return NewRegistry("kserc-fy2024-25", entries)
}
