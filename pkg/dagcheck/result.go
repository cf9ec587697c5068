package dagcheck

// MinNodes is the smallest node count a graph needs to be considered.
const MinNodes = 2

// Reason identifies which rule decided a validation result.
type Reason string

// Validation reasons, one per rule.
const (
	ReasonOK           Reason = "ok"
	ReasonTooFewNodes  Reason = "too_few_nodes"
	ReasonDisconnected Reason = "disconnected"
	ReasonCycle        Reason = "cycle"
)

// Messages shown in the editor's status indicator.
const (
	MsgTooFewNodes  = "At least 2 nodes are required."
	MsgDisconnected = "All nodes must be connected."
	MsgCycle        = "Cycle detected in the graph."
	MsgValid        = "Valid DAG structure."
)

var messages = map[Reason]string{
	ReasonOK:           MsgValid,
	ReasonTooFewNodes:  MsgTooFewNodes,
	ReasonDisconnected: MsgDisconnected,
	ReasonCycle:        MsgCycle,
}

// Result is the outcome of a validation: a validity flag plus the single
// message describing the deciding rule.
type Result struct {
	Valid   bool   `json:"isValid"`
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

func newResult(r Reason) Result {
	return Result{Valid: r == ReasonOK, Reason: r, Message: messages[r]}
}

// String renders the result as "valid: <message>" or "invalid: <message>".
func (r Result) String() string {
	if r.Valid {
		return "valid: " + r.Message
	}
	return "invalid: " + r.Message
}
