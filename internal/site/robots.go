package site

import "fmt"

// RenderRobots produces an allow-all robots.txt pointing at the sitemap.
// When the user supplies a robots source file it is copied verbatim
// instead; see the build package.
func RenderRobots(baseURL string) []byte {
	return []byte(fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", baseURL))
}
