package dataset

// ============================================================================
// SCHEMA · Describes the shape of each embedded dataset
// ============================================================================
// Ingestion is driven by these declarations: dimensions stay strings,
// measures are coerced to Number, and Nullable decides whether a missing
// value is tolerated or rejects the record.
// ============================================================================

// Kind classifies a column.
type Kind int

const (
	Dimension Kind = iota
	Measure
)

func (k Kind) String() string {
	if k == Measure {
		return "measure"
	}
	return "dimension"
}

// Column describes one field of a dataset.
type Column struct {
	Key         string `json:"key"`
	DisplayName string `json:"displayName"`
	Kind        Kind   `json:"-"`
	Nullable    bool   `json:"nullable"`
}

// Schema describes a complete dataset.
type Schema struct {
	Name    string   `json:"name"`
	Table   string   `json:"table"`
	Columns []Column `json:"columns"`
}

// Column looks up a column by key.
func (s Schema) Column(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

func dim(key, name string, nullable bool) Column {
	return Column{Key: key, DisplayName: name, Kind: Dimension, Nullable: nullable}
}

func measure(key, name string, nullable bool) Column {
	return Column{Key: key, DisplayName: name, Kind: Measure, Nullable: nullable}
}

// SalesSchema covers the monthly sales dataset.
var SalesSchema = Schema{
	Name:  "Monthly Sales",
	Table: "sales_data",
	Columns: []Column{
		dim("month", "Month", false),
		measure("sales", "Sales", false),
		measure("profit", "Profit", false),
		measure("customers", "Customers", false),
		dim("region", "Region", true),
		dim("status", "Status", true),
	},
}

// EmployeeSchema covers the employee dataset.
var EmployeeSchema = Schema{
	Name:  "Employees",
	Table: "employees",
	Columns: []Column{
		measure("id", "ID", false),
		dim("name", "Name", false),
		dim("department", "Department", false),
		measure("performance", "Performance", true),
		measure("salary", "Salary", false),
	},
}

// ProductSchema covers the product dataset.
var ProductSchema = Schema{
	Name:  "Products",
	Table: "products",
	Columns: []Column{
		measure("id", "ID", false),
		dim("name", "Name", false),
		dim("category", "Category", false),
		measure("price", "Price", false),
		measure("cost", "Cost", true),
		measure("inventory", "Inventory", false),
	},
}
