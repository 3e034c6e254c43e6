package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyRequestID CtxKey = "RequestID"
)

// Record keys used by the per-user RecordStore.
const (
	RecordUserProfile       = "userProfile"
	RecordMyApplications    = "myApplications"
	RecordJobApplications   = "jobApplications" // legacy mirror of myApplications
	RecordAutofillSessionNS = "autofillSession:"
)
