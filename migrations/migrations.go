// Package migrations embebe los scripts SQL del esquema para ejecutarlos
// con golang-migrate al arrancar el servicio.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
