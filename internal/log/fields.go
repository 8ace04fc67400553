package log

const (
	FieldOID    = "oid"
	FieldPrefix = "prefix"
	FieldCount  = "count"

	// Store
	FieldDriver = "driver"
	FieldPath   = "path"
	FieldAddr   = "addr"

	FieldConfigFile = "config_file"
)
