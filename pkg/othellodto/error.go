package othellodto

// ErrorResponse reports a failed request. Kind mirrors the engine's rule
// error taxonomy where applicable; Index names the offending move entry for
// replay and schema failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
	Index int    `json:"index,omitempty"`
}
