// Package domain contains the core model for licbom: package license records,
// diagnostics, configuration and the error taxonomy.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// JSON files, or the filesystem. Infra/adapters map into/from these types.
package domain
