package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// LineIdentity is the structured identity of an order line: the base
// catalog item plus every resolved modifier. Merging, removal and
// replace scoring compare identities, never rendered display names, so
// formatting can change without breaking equality.
type LineIdentity struct {
	Base       string   `json:"base"`
	Size       string   `json:"size,omitempty"`
	Ice        string   `json:"ice,omitempty"`
	Exclusions []string `json:"exclusions,omitempty"`
	Addons     []string `json:"addons,omitempty"`
}

// Equal reports whether two identities describe the same line. Exclusion
// and addon slices are produced in catalog order, so element-wise
// comparison is sufficient.
func (id LineIdentity) Equal(other LineIdentity) bool {
	if id.Base != other.Base || id.Size != other.Size || id.Ice != other.Ice {
		return false
	}
	return equalStrings(id.Exclusions, other.Exclusions) && equalStrings(id.Addons, other.Addons)
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// OrderLine is one entry in a session's order. DisplayName is rendered
// once at resolution time from the identity; UnitPrice reflects every
// resolved modifier at that moment.
type OrderLine struct {
	Identity    LineIdentity `json:"identity"`
	DisplayName string       `json:"name"`
	UnitPrice   float64      `json:"price"`
	Quantity    int          `json:"quantity"`
}

// LineTotal returns the extended price of the line.
func (ol OrderLine) LineTotal() float64 {
	return Round2(ol.UnitPrice * float64(ol.Quantity))
}

// OrderDocument is the record persisted when a session's order is
// finalized.
type OrderDocument struct {
	SessionID  string      `json:"sessionId"`
	CustomerID string      `json:"customerId,omitempty"`
	Items      []OrderLine `json:"items"`
	Total      float64     `json:"total"`
	Timestamp  time.Time   `json:"timestamp"`
}

// OrderTotal sums the extended prices of the given lines.
func OrderTotal(lines []OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return Round2(total)
}

// FormatLines renders lines as a bulleted list for summaries and
// generator prompts.
func FormatLines(lines []OrderLine) string {
	if len(lines) == 0 {
		return "(none)"
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, fmt.Sprintf("- %d %s ($%.2f)", line.Quantity, line.DisplayName, line.LineTotal()))
	}
	return strings.Join(parts, "\n")
}

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
