package models

// Enumerated FEMA ICS form codes supported by the bundled template
// catalog and accepted by the forms table. The list follows the
// standard ICS paperwork set (201 through 225).
const (
	FormTypeICS201  = "ICS-201"  // Incident Briefing
	FormTypeICS202  = "ICS-202"  // Incident Objectives
	FormTypeICS203  = "ICS-203"  // Organization Assignment List
	FormTypeICS204  = "ICS-204"  // Assignment List
	FormTypeICS205  = "ICS-205"  // Incident Radio Communications Plan
	FormTypeICS205A = "ICS-205A" // Communications List
	FormTypeICS206  = "ICS-206"  // Medical Plan
	FormTypeICS207  = "ICS-207"  // Incident Organization Chart
	FormTypeICS208  = "ICS-208"  // Safety Message/Plan
	FormTypeICS209  = "ICS-209"  // Incident Status Summary
	FormTypeICS210  = "ICS-210"  // Resource Status Change
	FormTypeICS211  = "ICS-211"  // Incident Check-In List
	FormTypeICS213  = "ICS-213"  // General Message
	FormTypeICS214  = "ICS-214"  // Activity Log
	FormTypeICS215  = "ICS-215"  // Operational Planning Worksheet
	FormTypeICS215A = "ICS-215A" // Incident Action Plan Safety Analysis
	FormTypeICS218  = "ICS-218"  // Support Vehicle/Equipment Inventory
	FormTypeICS220  = "ICS-220"  // Air Operations Summary
	FormTypeICS221  = "ICS-221"  // Demobilization Check-Out
	FormTypeICS225  = "ICS-225"  // Incident Personnel Performance Rating
)

// KnownFormTypes is the exhaustive set of ICS codes the application
// recognizes. Template catalog entries outside this list are rejected
// at load time.
var KnownFormTypes = []string{
	FormTypeICS201, FormTypeICS202, FormTypeICS203, FormTypeICS204,
	FormTypeICS205, FormTypeICS205A, FormTypeICS206, FormTypeICS207,
	FormTypeICS208, FormTypeICS209, FormTypeICS210, FormTypeICS211,
	FormTypeICS213, FormTypeICS214, FormTypeICS215, FormTypeICS215A,
	FormTypeICS218, FormTypeICS220, FormTypeICS221, FormTypeICS225,
}

// IsKnownFormType reports whether formType is one of the recognized
// ICS codes in [KnownFormTypes].
func IsKnownFormType(formType string) bool {
	for _, t := range KnownFormTypes {
		if t == formType {
			return true
		}
	}
	return false
}
