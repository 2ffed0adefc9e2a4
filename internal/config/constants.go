package config

// Version is the current Tern optimizer version.
// Set at build time by the release script via -ldflags or by writing to this file.
var Version = "0.3.1"

// OptionsFileName is the options file the compiler driver looks for next
// to the build manifest.
const OptionsFileName = "tern-opt.yaml"

// Names of the distinguished program entities the optimizer creates or
// targets.
const (
	RootClassName  = "Object"
	NullFieldName  = "$nullField"
	NullMethodName = "$nullMethod"
)
