package results

type ResultKind int

const (
	ResultKindSuccess ResultKind = 0
	ResultKindError   ResultKind = 1
)

var Ok = Define( //nolint:gochecknoglobals
	ResultKindSuccess,
	"OK",
	"OK",
)
