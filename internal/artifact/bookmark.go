package artifact

import (
	"fmt"
	"strings"

	"github.com/mithrel/dragkit/internal/filename"
)

// BookmarkFormat is the on-disk flavour of a URL bookmark.
type BookmarkFormat string

const (
	FormatWebloc  BookmarkFormat = "webloc"
	FormatURL     BookmarkFormat = "url"
	FormatDesktop BookmarkFormat = "desktop"
)

// ParseBookmarkFormat validates a configured format. Empty means webloc.
func ParseBookmarkFormat(s string) (BookmarkFormat, error) {
	switch f := BookmarkFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatWebloc:
		return FormatWebloc, nil
	case FormatURL, FormatDesktop:
		return f, nil
	default:
		return "", fmt.Errorf("unknown bookmark format %q (want webloc, url or desktop)", s)
	}
}

// Extension is the file extension used for the format.
func (f BookmarkFormat) Extension() string {
	switch f {
	case FormatURL:
		return "url"
	case FormatDesktop:
		return "desktop"
	default:
		return "webloc"
	}
}

const weblocTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>URL</key>
	<string>%s</string>
</dict>
</plist>
`

var plistEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// iniValue keeps a value on one line of a key=value file.
var iniValue = strings.NewReplacer("\r", "", "\n", " ")

// BookmarkBody renders the bookmark file contents for url.
func BookmarkBody(f BookmarkFormat, url, title string) []byte {
	switch f {
	case FormatURL:
		return []byte("[InternetShortcut]\r\nURL=" + iniValue.Replace(url) + "\r\n")
	case FormatDesktop:
		name := strings.TrimSpace(title)
		if name == "" {
			name = url
		}
		return []byte("[Desktop Entry]\nEncoding=UTF-8\nType=Link\nName=" +
			iniValue.Replace(name) + "\nURL=" + iniValue.Replace(url) + "\nIcon=text-html\n")
	default:
		return []byte(fmt.Sprintf(weblocTemplate, plistEscaper.Replace(url)))
	}
}

// CreateBookmarkFile writes a bookmark for url named after title.
func (m *Materializer) CreateBookmarkFile(url, title string) (Result, error) {
	name := filename.For(title, m.bookmarks.Extension())
	return m.write(KindBookmark, name, BookmarkBody(m.bookmarks, url, title))
}
