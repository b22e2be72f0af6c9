package app

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Operation tracks a command that may change the journal database.
// Operations start in memory with ID=0. Only mutating commands persist
// them, which gives them an auto-increment ID that doubles as the version
// of the snapshot uploaded on Close.
type Operation struct {
	ID     int64
	Name   string
	Status string
}

// NewOperation creates a new in-memory operation that has not failed yet.
func NewOperation(name string) *Operation {
	return &Operation{
		Name:   name,
		Status: StatusSuccess,
	}
}

// Persisted returns true if this operation has been saved to the database.
func (op *Operation) Persisted() bool {
	return op.ID != 0
}

// Fail marks the operation so its snapshot is not pushed to the vaults.
func (op *Operation) Fail() {
	op.Status = StatusError
}
