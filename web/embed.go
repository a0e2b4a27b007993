// Package web embeds the page templates and static assets of the UI.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// StaticFS returns the stylesheet and script served under /static/.
func StaticFS() fs.FS {
	return mustSub("static")
}

// TemplatesFS returns the layout and page templates.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}

// mustSub panics only if the embed directive and dir disagree.
func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: embedded directory " + dir + ": " + err.Error())
	}
	return sub
}
