package vault

import "context"

// DeviceAuthenticator is the seam for host-level user presence checks, such
// as biometric or OS credential prompts. The vault never talks to platform
// APIs itself; embedders supply an implementation and consult it before
// asking for the master password.
type DeviceAuthenticator interface {
	// Prompt asks the user to confirm their presence. It returns false when
	// the check ran but the user declined or failed it.
	Prompt(ctx context.Context, reason string) (bool, error)
}

// nopDeviceAuthenticator is a no-operation implementation
type nopDeviceAuthenticator struct{}

// NopDeviceAuthenticator approves every prompt without user interaction.
// Use this on hosts without a device-level authenticator.
var NopDeviceAuthenticator DeviceAuthenticator = &nopDeviceAuthenticator{}

func (n *nopDeviceAuthenticator) Prompt(ctx context.Context, reason string) (bool, error) {
	return true, nil
}
