package agentcall

import (
	"encoding/json"
	"fmt"
)

// Outcome is the result of a single collaborator call. Exactly one of the
// two shapes exists: an available outcome carrying the raw response body,
// or an unavailable one carrying the reason it degraded. Callers never see
// an error cross the call boundary.
type Outcome struct {
	Body   []byte
	Reason string
}

func (o Outcome) Available() bool {
	return o.Reason == ""
}

// Decode unmarshals the response body into v. Only meaningful on an
// available outcome; the body is guaranteed to be valid JSON when the
// call was made through one of the JSON methods.
func (o Outcome) Decode(v any) error {
	if !o.Available() {
		return fmt.Errorf("collaborator unavailable: %s", o.Reason)
	}
	return json.Unmarshal(o.Body, v)
}

func Unavailable(format string, args ...any) Outcome {
	return Outcome{Reason: fmt.Sprintf(format, args...)}
}
