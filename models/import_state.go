// SPDX-License-Identifier: Apache-2.0

package models

// ImportPhase enumerates the phases of an import operation.
type ImportPhase string

const (
	ImportIdle    ImportPhase = "idle"
	ImportLoading ImportPhase = "loading"
	ImportSuccess ImportPhase = "success"
	ImportError   ImportPhase = "error"
)

// ImportState is the observable state of the one import the orchestrator
// runs at a time: Idle -> Loading -> Success(count) | Error(reason).
// Count is meaningful only in the success phase, Reason only in the error
// phase.
type ImportState struct {
	Phase  ImportPhase
	Count  int
	Reason string
}
