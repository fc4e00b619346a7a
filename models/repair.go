package models

import "time"

// RepairStatus is the lifecycle state of a repair job. There is no enforced
// transition graph; any status may follow any other.
type RepairStatus string

const (
	StatusPending    RepairStatus = "Pending"
	StatusInProgress RepairStatus = "In Progress"
	StatusCompleted  RepairStatus = "Completed"
	StatusDelivered  RepairStatus = "Delivered"
	StatusCancelled  RepairStatus = "Cancelled"
)

// AllStatuses lists every valid repair status, in display order.
var AllStatuses = []RepairStatus{
	StatusPending,
	StatusInProgress,
	StatusCompleted,
	StatusDelivered,
	StatusCancelled,
}

// IsValid reports whether s is one of the known repair statuses.
func (s RepairStatus) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Part is a billable component or service line item, either from the fixed
// catalog or ad hoc. Identity is by ID.
type Part struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// RepairJob represents one repair ticket tracking a customer's device through
// intake, diagnosis, repair, and billing. Records are immutable after
// creation; UpdatedAt is set once alongside CreatedAt and kept for a future
// editing flow.
type RepairJob struct {
	ID               string       `json:"id"`
	InvoiceNumber    string       `json:"invoiceNumber"`
	CustomerName     string       `json:"customerName"`
	CustomerPhone    string       `json:"customerPhone"`
	DeviceModel      string       `json:"deviceModel"`
	IMEI             string       `json:"imei,omitempty"`
	IssueDescription string       `json:"issueDescription"`
	EstimatedCost    float64      `json:"estimatedCost"`
	AdvancePaid      float64      `json:"advancePaid"`
	PartsUsed        []Part       `json:"partsUsed"`
	LaborCharge      float64      `json:"laborCharge"`
	Status           RepairStatus `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	Notes            string       `json:"notes"`
	AIDiagnostic     string       `json:"aiDiagnostic,omitempty"`
}

// ShopDetails is static shop metadata used for invoice rendering. It is never
// mutated at runtime.
type ShopDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Owner   string `json:"owner,omitempty"`
}

// MaaTelecom is the shop this system serves.
var MaaTelecom = ShopDetails{
	Name:    "Maa Telecom",
	Address: "12No shop, Runner Plaza, Bogura",
	Phone:   "01774777100",
}

// CommonParts is the fixed catalog offered for quick selection on the intake
// form. Prices are in the shop currency (BDT).
var CommonParts = []Part{
	{ID: "1", Name: "Display Replacement", Price: 1500},
	{ID: "2", Name: "Battery (Original)", Price: 800},
	{ID: "3", Name: "Charging Port", Price: 300},
	{ID: "4", Name: "Speaker/Mic", Price: 250},
	{ID: "5", Name: "Back Shell", Price: 400},
	{ID: "6", Name: "Glass/Touch Only", Price: 700},
	{ID: "7", Name: "Software/Flash", Price: 300},
}
