package ports

// ScriptResolver loads a procedure factory from a script file.
// The returned value is handed to the engine untouched; the engine rejects
// anything that is not a procedure.
type ScriptResolver interface {
	Resolve(path string) (any, error)
}
