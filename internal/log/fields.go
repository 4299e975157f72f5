package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldMethod    = "method"
	FieldPath      = "path"
	FieldStatus    = "status_code"
	FieldDuration  = "duration_ms"
	FieldError     = "error"
	FieldTable     = "table"
	FieldMonth     = "month"
	FieldRecordID  = "id"
	FieldRecord    = "name"
	FieldAmount    = "amount"
	FieldCategory  = "category"
	FieldUser      = "user"
	FieldArchive   = "archive"
	FieldBackend   = "backend"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentHTTP      = "http"
	ComponentGenerator = "generator"
	ComponentRegistrar = "registrar"
	ComponentFinance   = "finance"
	ComponentStorage   = "storage"
	ComponentSheets    = "sheets"
	ComponentAMQP      = "amqp"
	ComponentWorker    = "worker"
	ComponentBackend   = "backend"
)
