// Package migrations bundles the versioned SQL applied by golang-migrate.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
