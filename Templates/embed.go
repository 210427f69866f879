// Package Templates holds the HTML views rendered by the controllers.
package Templates

import "embed"

//go:embed *.html layouts/*.html auth/*.html job_sites/*.html drive_logs/*.html
var FS embed.FS
