package workbook

// Column headers of the Clockify detailed export.
const (
	ColProject         = "Project"
	ColClient          = "Client"
	ColDescription     = "Description"
	ColUser            = "User"
	ColTags            = "Tags"
	ColStartDateTime   = "Start Date/Time"
	ColStartDate       = "Start Date"
	ColStartTime       = "Start Time"
	ColEndDateTime     = "End Date/Time"
	ColEndDate         = "End Date"
	ColEndTime         = "End Time"
	ColDuration        = "Duration (h)"
	ColDurationDecimal = "Duration (decimal)"
	ColBillableRate    = "Billable Rate"
	ColBillableAmount  = "Billable Amount"
)

// Sheet names of the generated workbook.
const (
	SummarySheet  = "Summary Report"
	DetailedSheet = "Detailed Report"
)

// SummaryHeaders returns the summary sheet headers for a currency code.
func SummaryHeaders(currency string) []string {
	return []string{ColProject, ColDescription, "Time (h)", "Time (decimal)", "Amount (" + currency + ")"}
}

// DetailedHeaders are the detailed sheet headers, in order.
var DetailedHeaders = []string{
	ColProject, ColClient, ColDescription, ColUser, ColTags,
	ColStartDateTime, ColEndDateTime, ColDuration, ColDurationDecimal,
	ColBillableRate, ColBillableAmount,
}

var requiredColumns = []string{ColProject, ColDescription, ColDuration}

// headerScanRows bounds the search for the header row.
const headerScanRows = 10
