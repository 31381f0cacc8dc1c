package harness

import (
	"fmt"
	"math/rand"
	"strings"
)

var Domains = []string{
	"example.com", "test.org", "demo.net", "site.io", "web.dev",
	"github.com", "stackoverflow.com", "medium.com", "dev.to", "reddit.com",
	"twitter.com", "facebook.com", "linkedin.com", "instagram.com", "youtube.com",
	"amazon.com", "ebay.com", "shopify.com", "etsy.com", "aliexpress.com",
	"wikipedia.org", "news.ycombinator.com", "techcrunch.com", "theverge.com",
	"cnn.com", "bbc.com", "nytimes.com", "guardian.com", "wsj.com",
	"google.com", "bing.com", "duckduckgo.com", "yahoo.com", "baidu.com",
}

var Paths = []string{
	"blog", "api", "docs", "about", "contact", "products", "services",
	"home", "index", "search", "profile", "settings", "dashboard", "admin",
	"users", "posts", "comments", "feed", "notifications", "messages",
	"articles", "news", "events", "gallery", "portfolio", "shop", "cart",
	"checkout", "payment", "orders", "shipping", "returns", "support",
	"faq", "help", "terms", "privacy", "legal", "sitemap", "archive",
	"category", "tag", "author", "date", "popular", "trending", "latest",
}

// Patterns are the URL shapes, filled with a domain, a path and the key index
var Patterns = []string{
	"https://www.%s/%s/%d",
	"https://%s/%s?id=%d",
	"https://api.%s/%s/%d",
}

// Generator produces URL-like keys. The domain, path and pattern are drawn at
// random, the index is embedded verbatim so keys of distinct indexes never collide.
type Generator struct {
	rnd *rand.Rand
}

// NewGenerator creates a Generator. Two generators with the same _seed_ produce
// the same keys for the same sequence of calls.
func NewGenerator(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// URL returns a key embedding _index_
func (g *Generator) URL(index uint64) string {
	domain := Domains[g.rnd.Intn(len(Domains))]
	path := Paths[g.rnd.Intn(len(Paths))]
	pattern := Patterns[g.rnd.Intn(len(Patterns))]
	return fmt.Sprintf(pattern, domain, path, index)
}

// Section strips the index from a generated key, leaving scheme, host and path
func Section(url string) string {
	if i := strings.LastIndexAny(url, "/?"); i > len("https://") {
		return url[:i]
	}
	return url
}
