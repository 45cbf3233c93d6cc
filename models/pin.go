package models

// PinSetup carries a proposed unlock PIN together with its confirmation
// entry. Both values are plaintext and must never be persisted as-is.
type PinSetup struct {
	Pin          string `json:"pin"`
	Confirmation string `json:"confirmation"`
}
