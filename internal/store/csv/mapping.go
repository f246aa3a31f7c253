package csv

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ColumnMapping maps dataset headers to sale record fields. The defaults
// match the Kaggle sales sample; a YAML file can override them for sources
// with different header names.
type ColumnMapping struct {
	OrderNumber  string `yaml:"order_number"`
	LineNumber   string `yaml:"line_number"`
	OrderDate    string `yaml:"order_date"`
	Quantity     string `yaml:"quantity"`
	UnitPrice    string `yaml:"unit_price"`
	SalesAmount  string `yaml:"sales_amount"`
	Status       string `yaml:"status"`
	Country      string `yaml:"country"`
	ProductLine  string `yaml:"product_line"`
	CustomerName string `yaml:"customer_name"`
}

// DefaultMapping returns the Kaggle sales sample header names.
func DefaultMapping() ColumnMapping {
	return ColumnMapping{
		OrderNumber:  "ORDERNUMBER",
		LineNumber:   "ORDERLINENUMBER",
		OrderDate:    "ORDERDATE",
		Quantity:     "QUANTITYORDERED",
		UnitPrice:    "PRICEEACH",
		SalesAmount:  "SALES",
		Status:       "STATUS",
		Country:      "COUNTRY",
		ProductLine:  "PRODUCTLINE",
		CustomerName: "CUSTOMERNAME",
	}
}

// LoadMapping reads a mapping file and fills unset fields from the defaults.
func LoadMapping(path string) (ColumnMapping, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ColumnMapping{}, fmt.Errorf("read mapping file %q: %w", path, err)
	}

	m := DefaultMapping()
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return ColumnMapping{}, fmt.Errorf("parse mapping file %q: %w", path, err)
	}
	return m, nil
}
