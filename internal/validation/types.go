package validation

// Check is one preflight condition.
type Check struct {
	Name string
	// Required checks fail the preflight; the others only warn.
	Required bool
	Run      func() error
}

// Result captures the outcome of a single check.
type Result struct {
	Check   Check
	Passed  bool
	Warning bool
	Message string
	Error   error
}
