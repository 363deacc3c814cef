package results

// OperationResult is the uniform return shape for service operations.
// Exactly one of Success or Failure is expected to be set: Failure carries an
// expected, user-facing domain outcome (deadline passed, not found, limit
// reached), while an infrastructure fault is returned as a separate error by
// the operation itself.
type OperationResult struct {
	Success any
	Failure any
	Error   error
}

// Success wraps a success payload in an OperationResult.
func Success(payload any) OperationResult {
	return OperationResult{Success: payload}
}

// Failure wraps a domain failure payload in an OperationResult.
func Failure(payload any) OperationResult {
	return OperationResult{Failure: payload}
}

// HandlerResult is a routable outcome: a payload destined for a topic.
type HandlerResult struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// MapToHandlerResults converts an OperationResult into outbound handler
// results using the given success/failure topics. Results with no payload
// produce no messages.
func (r OperationResult) MapToHandlerResults(successTopic, failureTopic string) []HandlerResult {
	var out []HandlerResult
	if r.Success != nil {
		out = append(out, HandlerResult{Topic: successTopic, Payload: r.Success})
	}
	if r.Failure != nil {
		out = append(out, HandlerResult{Topic: failureTopic, Payload: r.Failure})
	}
	return out
}
