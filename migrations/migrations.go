// Package migrations содержит SQL миграции журнала отправок
package migrations

import "embed"

// FS встроенные файлы миграций для golang-migrate
//
//go:embed *.sql
var FS embed.FS
