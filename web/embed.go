// Package web embeds the page templates and static assets into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// sub returns the named directory of the embedded tree. The directories are
// fixed at build time, so a failure here is a programming error.
func sub(dir string) fs.FS {
	f, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: missing embedded directory " + dir + ": " + err.Error())
	}
	return f
}

// StaticFS returns the stylesheet and other assets served under /static/.
func StaticFS() fs.FS {
	return sub("static")
}

// TemplatesFS returns the layout and page templates.
func TemplatesFS() fs.FS {
	return sub("templates")
}
