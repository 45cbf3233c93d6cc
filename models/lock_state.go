// SPDX-License-Identifier: Apache-2.0

package models

// LockState enumerates the states of the vault unlock gate.
type LockState string

const (
	// LockStateNoPinConfigured means no PIN has ever been set up; the
	// vault opens without a challenge.
	LockStateNoPinConfigured LockState = "no_pin_configured"

	// LockStateAwaitingPin means a PIN exists and must be entered.
	LockStateAwaitingPin LockState = "locked_awaiting_pin"

	// LockStateAwaitingBiometric means a PIN exists and the device can
	// offer a biometric prompt first; PIN entry remains the fallback.
	LockStateAwaitingBiometric LockState = "locked_awaiting_biometric"

	// LockStateUnlocked means the gate has been passed.
	LockStateUnlocked LockState = "unlocked"
)
