// Package migrations embeds the goose SQL migrations for the CRM mirror
// database (dispatches, drivers, waypoints, staff).
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
