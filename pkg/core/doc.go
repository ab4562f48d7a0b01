// Package core defines the shared language of the microbundle system.
//
// This package contains:
//   - Domain entities (PackageManifest, BuildOptions, BuildConfig)
//   - The output Format enumeration and its scheduling rule
//   - Transform configuration units (ConfigItem)
//   - Identifier and module-name derivation rules
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
