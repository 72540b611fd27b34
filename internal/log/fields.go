package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldTraceID     = "trace_id"
	FieldChatID      = "chat_id"
	FieldUsername    = "username"
	FieldCommand     = "command"
	FieldArgs        = "args"
	FieldTransaction = "transaction_id"
	FieldKind        = "kind"
	FieldAmountCents = "amount_cents"
	FieldInterval    = "interval"
	FieldBackend     = "backend"
	FieldOperation   = "operation"
	FieldDuration    = "duration_ms"
	FieldError       = "error"
)

// Components defines standard component names
const (
	ComponentBot      = "bot"
	ComponentCommand  = "command"
	ComponentStorage  = "storage"
	ComponentEvents   = "events"
	ComponentTelegram = "telegram"
	ComponentConfig   = "config"
)

// Operations defines standard operation names
const (
	OpCreate   = "create"
	OpRead     = "read"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpReport   = "report"
	OpDispatch = "dispatch"
	OpPublish  = "publish"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)
