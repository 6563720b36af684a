package domain

import "strings"

const (
	// InstancePrefix namespaces every instance name in storage keys.
	InstancePrefix = "shopping-cart"

	// DefaultInstanceName is used when the caller passes an empty name.
	DefaultInstanceName = "default"
)

// InstanceName normalises a caller-supplied cart instance name to its
// fully-qualified form, e.g. "wishlist" -> "shopping-cart.wishlist".
// An empty name maps to the default instance, and a name that already
// carries the prefix is stripped first so re-qualifying is idempotent.
func InstanceName(name string) string {
	if name == "" {
		name = DefaultInstanceName
	}
	name = strings.ReplaceAll(name, InstancePrefix+".", "")

	return InstancePrefix + "." + name
}
