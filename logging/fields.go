package logging

// Field name constants for structured logging.
const (
	FieldError = "error"
	FieldPath  = "path"
	FieldFiles = "files"
	FieldJobs  = "jobs"

	// Render fields.
	FieldFilename    = "filename"
	FieldLanguage    = "language"
	FieldMode        = "mode"
	FieldTheme       = "theme"
	FieldLines       = "lines"
	FieldSymbols     = "symbols"
	FieldDiagnostics = "diagnostics"
	FieldImports     = "imports"

	// Batch fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesRendered   = "files_rendered"
	FieldFilesFailed     = "files_failed"
	FieldMaxBytes        = "max_bytes"
)
