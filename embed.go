package fitweb

import "embed"

// DashboardFS contains the built dashboard SPA files.
// Run "npm run build" in web/ to rebuild.
//
//go:embed web/dist
var DashboardFS embed.FS
