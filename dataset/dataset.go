// Package dataset provides the three fixed business datasets (monthly
// sales, employees, products). The raw tables are embedded CSV with
// deliberately messy cells; Load normalises them once into strictly typed
// records.
package dataset

import (
	"embed"
	"fmt"
	"strings"
	"sync"
)

//go:embed data/*.csv
var raw embed.FS

// Set holds the normalised datasets. It is never mutated after Load;
// accessors hand out copies.
type Set struct {
	sales     []SalesRecord
	employees []EmployeeRecord
	products  []ProductRecord
}

// Sales returns a copy of the monthly sales records in calendar order.
func (s *Set) Sales() []SalesRecord {
	return append([]SalesRecord(nil), s.sales...)
}

// Employees returns a copy of the employee records.
func (s *Set) Employees() []EmployeeRecord {
	return append([]EmployeeRecord(nil), s.employees...)
}

// Products returns a copy of the product records.
func (s *Set) Products() []ProductRecord {
	return append([]ProductRecord(nil), s.products...)
}

var (
	defaultOnce sync.Once
	defaultSet  *Set
	defaultErr  error
)

// Default returns the process-wide dataset, loading it on first use.
func Default() (*Set, error) {
	defaultOnce.Do(func() {
		defaultSet, defaultErr = Load()
	})
	return defaultSet, defaultErr
}

// Load parses and normalises the embedded datasets.
func Load() (*Set, error) {
	salesRows, err := readTable("data/sales.csv", SalesSchema)
	if err != nil {
		return nil, err
	}
	sales, err := SalesFromRows(salesRows)
	if err != nil {
		return nil, err
	}

	empRows, err := readTable("data/employees.csv", EmployeeSchema)
	if err != nil {
		return nil, err
	}
	products, err := readTable("data/products.csv", ProductSchema)
	if err != nil {
		return nil, err
	}

	return &Set{
		sales:     sales,
		employees: EmployeesFromRows(empRows),
		products:  ProductsFromRows(products),
	}, nil
}

func readTable(name string, sch Schema) ([]Row, error) {
	data, err := raw.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return ParseCSV(data, sch)
}

// SalesFromRows converts ingested rows into sales records. The result must
// hold exactly one record per calendar month, in order.
func SalesFromRows(rows []Row) ([]SalesRecord, error) {
	if len(rows) != len(Months) {
		return nil, fmt.Errorf("%w: sales has %d records, want %d", ErrInvalidRecord, len(rows), len(Months))
	}
	out := make([]SalesRecord, 0, len(rows))
	for i, r := range rows {
		month := r.Dimensions["month"]
		idx, ok := MonthIndex(month)
		if !ok || idx != i {
			return nil, fmt.Errorf("%w: sales record %d has month %q, want %q", ErrInvalidRecord, i+1, month, Months[i])
		}
		out = append(out, SalesRecord{
			Month:     Months[idx],
			Sales:     r.Measures["sales"],
			Profit:    r.Measures["profit"],
			Customers: r.Measures["customers"],
			Region:    r.Dimensions["region"],
			Status:    strings.ToLower(r.Dimensions["status"]),
		})
	}
	return out, nil
}

// EmployeesFromRows converts ingested rows into employee records.
func EmployeesFromRows(rows []Row) []EmployeeRecord {
	out := make([]EmployeeRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, EmployeeRecord{
			ID:          int(r.Measures["id"].Value),
			Name:        r.Dimensions["name"],
			Department:  CanonicalDepartment(r.Dimensions["department"]),
			Performance: r.Measures["performance"],
			Salary:      r.Measures["salary"],
		})
	}
	return out
}

// ProductsFromRows converts ingested rows into product records.
func ProductsFromRows(rows []Row) []ProductRecord {
	out := make([]ProductRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, ProductRecord{
			ID:        int(r.Measures["id"].Value),
			Name:      r.Dimensions["name"],
			Category:  CanonicalCategory(r.Dimensions["category"]),
			Price:     r.Measures["price"],
			Cost:      r.Measures["cost"],
			Inventory: r.Measures["inventory"],
		})
	}
	return out
}
