package workflow

import "errors"

// Caller-facing error taxonomy. Handlers map these onto HTTP statuses with
// errors.Is; anything else is treated as a storage error.
var (
	ErrStudentNotFound      = errors.New("student not found")
	ErrJobNotFound          = errors.New("job not found")
	ErrJobUnavailable       = errors.New("job is no longer accepting applications")
	ErrOfferConflict        = errors.New("student already holds a selected offer for this job type")
	ErrDuplicateApplication = errors.New("student has already applied for this job")
	ErrInvalidResume        = errors.New("selected resume does not exist on the student profile")
	ErrInvalidStatusValue   = errors.New("invalid status value")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrAlreadyDecided       = errors.New("application has already been decided")
)

// Store-level sentinels. Implementations return these so the engine can map
// them onto the taxonomy above without knowing the driver.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)
