package domain

// File-naming conventions shared by the session and the CLI.
const (
	// TemplateFileName is the stage template bundled in the assets directory.
	TemplateFileName = "MS_Template.json"

	// WorkingFileName is the transient merged document written before each
	// conversion. It is overwritten in place on every call.
	WorkingFileName = "WorkingTemplate.json"

	// McdExt is the configuration file extension.
	McdExt = ".mcd"

	// UncalculatedPrefix and CalculatedPrefix name conversion outputs.
	UncalculatedPrefix = "Uncalculated_"
	CalculatedPrefix   = "Calculated_"

	// RecalculatedFileName is the fixed output of a recalculation run.
	RecalculatedFileName = "Recalculated" + McdExt

	// ParametersFileKey is the configuration-files entry holding the
	// calculated parameter document.
	ParametersFileKey = "Parameters"
)
