// Package models holds the record written to the tabular store and the
// builder that validates it.
package models

// Column names of the tabular store, in file order.
const (
	ColumnCompanyName        = "Company Name"
	ColumnProductBrand       = "Product Brand"
	ColumnProductDescription = "Product Description"
	ColumnProductionLocation = "Production Location"
	ColumnGeographicalArea   = "Geographical Area"
	ColumnProductionVolume   = "Production Volume"
	ColumnAnnualRevenue      = "Annual Revenue"
	ColumnExtractedText      = "Extracted Text"
)

// Record is one row of the tabular store. The csv tags fix both the header
// text and the column order.
type Record struct {
	CompanyName        string `csv:"Company Name"`
	ProductBrand       string `csv:"Product Brand"`
	ProductDescription string `csv:"Product Description"`
	ProductionLocation string `csv:"Production Location"`
	GeographicalArea   string `csv:"Geographical Area"`
	ProductionVolume   string `csv:"Production Volume"`
	AnnualRevenue      string `csv:"Annual Revenue"`
	ExtractedText      string `csv:"Extracted Text"`
}

// Columns returns the store header in file order.
func Columns() []string {
	return []string{
		ColumnCompanyName,
		ColumnProductBrand,
		ColumnProductDescription,
		ColumnProductionLocation,
		ColumnGeographicalArea,
		ColumnProductionVolume,
		ColumnAnnualRevenue,
		ColumnExtractedText,
	}
}

// Row returns the record's values in column order.
func (r Record) Row() []string {
	return []string{
		r.CompanyName,
		r.ProductBrand,
		r.ProductDescription,
		r.ProductionLocation,
		r.GeographicalArea,
		r.ProductionVolume,
		r.AnnualRevenue,
		r.ExtractedText,
	}
}

// Fields is the operator-entered part of a record. All seven are required.
type Fields struct {
	CompanyName        string
	ProductBrand       string
	ProductDescription string
	ProductionLocation string
	GeographicalArea   string
	ProductionVolume   string
	AnnualRevenue      string
}

// Missing returns the column names of the empty fields, in column order.
func (f Fields) Missing() []string {
	var missing []string
	for _, c := range []struct {
		name  string
		value string
	}{
		{ColumnCompanyName, f.CompanyName},
		{ColumnProductBrand, f.ProductBrand},
		{ColumnProductDescription, f.ProductDescription},
		{ColumnProductionLocation, f.ProductionLocation},
		{ColumnGeographicalArea, f.GeographicalArea},
		{ColumnProductionVolume, f.ProductionVolume},
		{ColumnAnnualRevenue, f.AnnualRevenue},
	} {
		if c.value == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}

// UploadedFile is a file handed to the extractor. Only its derived text
// outlives the session.
type UploadedFile struct {
	Name string
	Data []byte
}
