package appfs

import "embed"

// FS embeds files needed at runtime wherever the binary runs from.
//go:embed migrations
var FS embed.FS
