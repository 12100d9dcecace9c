package components

import (
	"github.com/a-h/templ"

	"github.com/leapstack-labs/formbot/internal/settings"
	"github.com/leapstack-labs/formbot/internal/ui/resources"
)

// DatastarScript is the Datastar client bundle.
const DatastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0-RC.6/bundles/datastar.js"

// Page describes the document around a page body.
type Page struct {
	Title string
	Theme settings.Theme
	IsDev bool
}

// Layout renders the HTML document with body as its content.
func Layout(p Page, body templ.Component) templ.Component {
	return component(func(m *markup) {
		theme := p.Theme
		if theme == "" {
			theme = settings.DefaultTheme
		}

		m.raw("<!doctype html>")
		m.open("html", "lang", "en", "data-theme", theme.String())
		m.open("head")
		m.open("meta", "charset", "utf-8")
		m.open("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		title := "Formbot"
		if p.Title != "" {
			title = p.Title + " - Formbot"
		}
		m.el("title", title)
		m.open("link", "rel", "stylesheet", "href", resources.StaticPath("style.css"))
		m.open("script", "type", "module", "src", DatastarScript)
		m.close("script")
		m.close("head")

		m.open("body", "class", withClass("theme-"+theme.String(), "dev", p.IsDev))
		if p.IsDev {
			m.open("div", "id", "hotreload", "data-init", "@get('/reload', {retryMaxCount: 1000, retryInterval: 20, retryMaxWaitMs: 200})")
			m.close("div")
		}
		m.render(body)
		m.close("body")
		m.close("html")
	})
}
