package models

import (
	"fmt"

	"fjacquet/doc-extract-csv/internal/apperror"
)

// RecordBuilder provides a fluent API for constructing records
type RecordBuilder struct {
	fields        Fields
	extractedText string
}

// NewRecordBuilder creates an empty RecordBuilder
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{}
}

// WithFields replaces all seven operator fields at once
func (b *RecordBuilder) WithFields(f Fields) *RecordBuilder {
	b.fields = f
	return b
}

// WithExtractedText sets the accumulated document text. It is never validated.
func (b *RecordBuilder) WithExtractedText(text string) *RecordBuilder {
	b.extractedText = text
	return b
}

// Build validates the required fields and returns the final Record
func (b *RecordBuilder) Build() (Record, error) {
	return Assemble(b.fields, b.extractedText)
}

// Assemble combines operator fields with extracted text. It fails with a
// *apperror.MissingRequiredFieldError naming every empty required field.
func Assemble(fields Fields, extractedText string) (Record, error) {
	if missing := fields.Missing(); len(missing) > 0 {
		return Record{}, &apperror.MissingRequiredFieldError{Fields: missing}
	}
	return Record{
		CompanyName:        fields.CompanyName,
		ProductBrand:       fields.ProductBrand,
		ProductDescription: fields.ProductDescription,
		ProductionLocation: fields.ProductionLocation,
		GeographicalArea:   fields.GeographicalArea,
		ProductionVolume:   fields.ProductionVolume,
		AnnualRevenue:      fields.AnnualRevenue,
		ExtractedText:      extractedText,
	}, nil
}

// String renders a short description for logs.
func (r Record) String() string {
	return fmt.Sprintf("%s/%s (%d chars of text)", r.CompanyName, r.ProductBrand, len(r.ExtractedText))
}
