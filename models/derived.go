package models

import (
	"strings"
	"time"
)

// Derived views over the repair list. These are pure functions recomputed on
// every read; the list is small enough that caching would be pointless.

// CountByStatus returns the number of repairs currently in the given status.
func CountByStatus(repairs []RepairJob, status RepairStatus) int {
	count := 0
	for _, r := range repairs {
		if r.Status == status {
			count++
		}
	}
	return count
}

// CountCompletedOrDelivered returns the number of repairs that have been
// completed, whether or not the customer has picked the device up yet.
func CountCompletedOrDelivered(repairs []RepairJob) int {
	count := 0
	for _, r := range repairs {
		if r.Status == StatusCompleted || r.Status == StatusDelivered {
			count++
		}
	}
	return count
}

// RevenueToday sums the estimated cost of every repair created on the same
// local calendar date as now. A record dated yesterday contributes nothing
// regardless of amount.
func RevenueToday(repairs []RepairJob, now time.Time) float64 {
	year, month, day := now.Date()
	total := 0.0
	for _, r := range repairs {
		cy, cm, cd := r.CreatedAt.In(now.Location()).Date()
		if cy == year && cm == month && cd == day {
			total += r.EstimatedCost
		}
	}
	return total
}

// FilterBySearch returns the repairs matching term in any of customer name,
// invoice number, or device model (case-insensitive substring), or in the
// customer phone (case-sensitive, since phones are numeric). An empty term
// matches everything. Order is preserved.
func FilterBySearch(repairs []RepairJob, term string) []RepairJob {
	if term == "" {
		return repairs
	}
	lower := strings.ToLower(term)
	matched := make([]RepairJob, 0, len(repairs))
	for _, r := range repairs {
		if strings.Contains(strings.ToLower(r.CustomerName), lower) ||
			strings.Contains(r.CustomerPhone, term) ||
			strings.Contains(strings.ToLower(r.InvoiceNumber), lower) ||
			strings.Contains(strings.ToLower(r.DeviceModel), lower) {
			matched = append(matched, r)
		}
	}
	return matched
}

// PartsTotal sums the prices of the parts used on a repair.
func PartsTotal(r RepairJob) float64 {
	total := 0.0
	for _, p := range r.PartsUsed {
		total += p.Price
	}
	return total
}

// InvoiceTotal computes the billed subtotal (parts plus labor) and the amount
// still due after the advance. Due can go negative when overpaid.
func InvoiceTotal(r RepairJob) (subtotal, due float64) {
	subtotal = PartsTotal(r) + r.LaborCharge
	due = subtotal - r.AdvancePaid
	return subtotal, due
}

// ListRowTotal computes the amount shown on the repair-list screen:
// estimated cost plus labor plus parts. Note this is deliberately a different
// formula from InvoiceTotal, which omits the estimated cost; the two have
// always been computed independently and must not be unified.
func ListRowTotal(r RepairJob) float64 {
	return r.EstimatedCost + r.LaborCharge + PartsTotal(r)
}
