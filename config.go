package exarch

import "github.com/bugops/exarch/internal/model"

// AllowedFeatures gathers the opt-in feature bits that are denied by
// default. Every field defaults to false: extraction starts maximally
// restrictive and the caller must opt into each capability explicitly.
type AllowedFeatures = model.AllowedFeatures

// SecurityConfig is the immutable policy threaded through one extraction,
// inspection, or creation operation. It is never mutated after
// construction: validators and the engine hold it by reference only.
type SecurityConfig = model.SecurityConfig

// DefaultSecurityConfig returns the secure-by-default policy: every
// allow bit off, generous but bounded size/count/ratio/depth limits, and
// the standard banned-component set.
func DefaultSecurityConfig() *SecurityConfig { return model.DefaultSecurityConfig() }

// PermissiveSecurityConfig returns a preset intended only for archives
// from a trusted source: it enables symlinks, hardlinks, absolute
// paths, world-writable permissions, preserves permissions, raises the
// compression-ratio ceiling to 1000, and clears the banned-component
// list.
func PermissiveSecurityConfig() *SecurityConfig { return model.PermissiveSecurityConfig() }
