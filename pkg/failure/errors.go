package failure

type Severity int

// resolver control flow
const (
	SeverityFatal Severity = iota
	SeverityRecoverable
)

// ClassifiedError is the error contract every pipeline stage must satisfy.
// Stages classify their own failures; only the resolver decides what a
// classification means for the request that triggered it.
type ClassifiedError interface {
	error
	Severity() Severity
}
