package readme

import (
	"regexp"
	"strings"
)

// DefaultDocURL is the documentation host used when neither the package nor
// the configuration names one.
const DefaultDocURL = "https://docs.rs/"

// inlineLink matches [text](url) and [text](url "title"). Link text is any
// run of non-bracket characters; the url stops at whitespace or a paren.
var inlineLink = regexp.MustCompile(`\[([^\[\]]+)\]\(([^\s()]+)(?: "([^"]*)")?\)`)

// RewriteLinks turns relative rustdoc links in text into absolute links
// against baseURL. Links starting with "../" point at a sibling crate at the
// host root; links starting with "./" point into this crate's own docs. Any
// other link is returned byte for byte.
func RewriteLinks(pkgName, text, baseURL string) string {
	base := normalizeBaseURL(baseURL)
	return inlineLink.ReplaceAllStringFunc(text, func(link string) string {
		m := inlineLink.FindStringSubmatchIndex(link)
		label, target := link[m[2]:m[3]], link[m[4]:m[5]]
		title, hasTitle := "", m[6] >= 0
		if hasTitle {
			title = link[m[6]:m[7]]
		}

		var abs string
		switch {
		case strings.HasPrefix(target, "../"):
			page := strings.ReplaceAll(strings.TrimPrefix(target, "../"), "_", "-")
			abs = base + strings.TrimSuffix(page, "/index.html")
		case strings.HasPrefix(target, "./"):
			abs = base + pkgName + "/latest/" + strings.ReplaceAll(pkgName, "-", "_") + "/" + strings.TrimPrefix(target, "./")
		default:
			return link
		}

		var b strings.Builder
		b.Grow(len(link) + len(abs))
		b.WriteString("[")
		b.WriteString(label)
		b.WriteString("](")
		b.WriteString(abs)
		if hasTitle {
			b.WriteString(` "`)
			b.WriteString(title)
			b.WriteString(`"`)
		}
		b.WriteString(")")
		return b.String()
	})
}

func normalizeBaseURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return DefaultDocURL
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
