package services

// Custom errors shared by the workflow services. Handlers translate these
// into HTTP statuses; raw provider/database errors never reach the client.

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

// AIServiceError carries a user-safe message for a failed provider call.
// The doubt path maps it to 503 so clients can tell "AI down" from a bug.
type AIServiceError struct{ Message string }

func (e *AIServiceError) Error() string { return e.Message }
