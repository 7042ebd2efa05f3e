package domain

import "errors"

var (
	// ErrStoreUnavailable indicates no store path is set or the store
	// connection could not be established.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrSchemaVersionMismatch indicates the store was written with a schema
	// version this build does not support.
	ErrSchemaVersionMismatch = errors.New("unsupported schema version")

	// ErrMissingMetadata indicates an expected ProjectMetaData row is absent.
	ErrMissingMetadata = errors.New("missing required metadata")

	// ErrStructuralIntegrity indicates the persisted rows do not form a
	// single rooted tree.
	ErrStructuralIntegrity = errors.New("structural integrity error")

	// ErrReconciliationFlag indicates a change flag combination with no
	// entry in the save action table.
	ErrReconciliationFlag = errors.New("unreconcilable change flags")

	ErrNotFound    = errors.New("not found")
	ErrNoProject   = errors.New("no project open")
	ErrNoWorkDay   = errors.New("no work day logged")
	ErrBranchField = errors.New("field is derived on branch tasks")
	ErrRootDelete  = errors.New("the root task cannot be deleted")
)
