// Package migrations содержит SQL-миграции схемы базы данных.
// Файлы применяются через goose, нумерация строго последовательная.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
