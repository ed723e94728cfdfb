package appfs

import "embed"

// FS holds the assets shipped inside the binaries.
//go:embed migrations
var FS embed.FS
