package logging

// Standardized field names for structured logging.
// Every component uses these keys so a run can be filtered by run_id or line.
const (
	FieldRunID       = "run_id"
	FieldFile        = "file_path"
	FieldLine        = "line"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldAccountRef  = "account_ref"
	FieldAccountID   = "account_id"
	FieldPendingRef  = "pending_ref"
	FieldAmount      = "amount"
	FieldType        = "type"
	FieldURL         = "url"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldCount       = "count"
	FieldOutputFile  = "output_file"
	FieldPage        = "page"
)
