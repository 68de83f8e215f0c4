package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrToolNotFound       = fmt.Errorf("required tool not found")

	// Classification errors
	ErrInvalidURL      = fmt.Errorf("invalid url")
	ErrUnsupportedHost = fmt.Errorf("unsupported host")
	ErrUnsupportedKind = fmt.Errorf("unsupported collection kind")

	// Resolution errors, fatal to a whole collection
	ErrAuth       = fmt.Errorf("authentication failed")
	ErrResolution = fmt.Errorf("catalog resolution failed")

	// Job errors, fatal to one track only
	ErrNoCandidates      = fmt.Errorf("no candidates")
	ErrSearchFailed      = fmt.Errorf("candidate search failed")
	ErrAcquisitionFailed = fmt.Errorf("acquisition failed")
	ErrTaggingFailed     = fmt.Errorf("tagging failed")
	ErrJobPanicked       = fmt.Errorf("job panicked")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
