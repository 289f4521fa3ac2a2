package dataset

import "strings"

// SalesRecord is one month of company sales.
type SalesRecord struct {
	Month     string `json:"month"`
	Sales     Number `json:"sales"`
	Profit    Number `json:"profit"`
	Customers Number `json:"customers"`
	Region    string `json:"region,omitempty"` // raw code, "" when null
	Status    string `json:"status,omitempty"` // lower-cased, "" when null
}

// EmployeeRecord is one employee.
type EmployeeRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Department  string `json:"department"`
	Performance Number `json:"performance"`
	Salary      Number `json:"salary"`
}

// ProductRecord is one product line.
type ProductRecord struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Price     Number `json:"price"`
	Cost      Number `json:"cost"`
	Inventory Number `json:"inventory"`
}

// Months are the fixed month labels in calendar order.
var Months = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthIndex returns the zero-based calendar index of a month label.
func MonthIndex(label string) (int, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	for i, m := range Months {
		if strings.ToLower(m) == l || strings.ToLower(monthNames[i]) == l {
			return i, true
		}
	}
	return -1, false
}

// MonthName returns the full month name for a label, or the label itself.
func MonthName(label string) string {
	if i, ok := MonthIndex(label); ok {
		return monthNames[i]
	}
	return label
}

// departmentAliases maps folded abbreviations to canonical names.
var departmentAliases = map[string]string{
	"eng":  "Engineering",
	"mktg": "Marketing",
	"mkt":  "Marketing",
	"fin":  "Finance",
	"hr":   "Human Resources",
}

// CanonicalDepartment folds casing, whitespace and abbreviations so
// "sales ", "SALES" and "Sales" are one department.
func CanonicalDepartment(raw string) string {
	folded := strings.ToLower(strings.Trim(strings.TrimSpace(raw), "."))
	if alias, ok := departmentAliases[folded]; ok {
		return alias
	}
	return titleCase(folded)
}

// CanonicalCategory folds product category casing.
func CanonicalCategory(raw string) string {
	return titleCase(strings.ToLower(strings.TrimSpace(raw)))
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
