package logging

// Field names shared by every component so log lines can be filtered consistently.
const (
	FieldFile       = "file_name"
	FieldPath       = "path"
	FieldFormat     = "format"
	FieldExtension  = "extension"
	FieldOperation  = "operation"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldBytes      = "bytes"
	FieldSession    = "session_id"
	FieldStorePath  = "store_path"
	FieldDelimiter  = "delimiter"
	FieldOutputFile = "output_file"
	FieldMissing    = "missing_fields"
)
