package components

import (
	"strconv"
	"time"

	"github.com/a-h/templ"
)

// HomeNavbar is the marketing site header.
func HomeNavbar() templ.Component {
	return component(func(m *markup) {
		m.open("header", "id", "lander-navbar", "class", "lander-navbar")
		m.el("a", "Formbot", "class", "brand", "href", "/")
		m.open("nav")
		m.el("a", "Sign in", "class", "btn btn-ghost", "href", "/login")
		m.el("a", "Create a FormBot", "class", "btn btn-primary", "href", "/login")
		m.close("nav")
		m.close("header")
	})
}

// HomeBanner is the hero section.
func HomeBanner() templ.Component {
	return component(func(m *markup) {
		m.open("section", "id", "lander-banner", "class", "lander-banner")
		m.el("h1", "Build advanced chatbots visually")
		m.el("p", "Formbot gives you powerful blocks to create unique chat experiences. "+
			"Embed them anywhere on your web and mobile apps and start collecting results like magic.")
		m.el("a", "Create a FormBot for free", "class", "btn btn-primary", "href", "/login")
		m.close("section")
	})
}

// HomeFooter is the marketing site footer.
func HomeFooter(now time.Time) templ.Component {
	return component(func(m *markup) {
		m.open("footer", "id", "lander-footer", "class", "lander-footer")
		m.open("div", "class", "footer-column")
		m.el("p", "Made with care by the Formbot team")
		m.el("small", "© "+strconv.Itoa(now.Year())+" Formbot")
		m.close("div")

		columns := []struct {
			title string
			links []string
		}{
			{"Product", []string{"Status", "Documentation", "Roadmap", "Pricing"}},
			{"Community", []string{"Discord", "GitHub repository", "Twitter", "LinkedIn"}},
			{"Company", []string{"About", "Contact", "Terms of Service", "Privacy Policy"}},
		}
		for _, col := range columns {
			m.open("div", "class", "footer-column")
			m.el("h4", col.title)
			m.open("ul")
			for _, link := range col.links {
				m.open("li")
				m.el("a", link, "href", "#")
				m.close("li")
			}
			m.close("ul")
			m.close("div")
		}
		m.close("footer")
	})
}

// HomePage is the static marketing homepage.
func HomePage(now time.Time) templ.Component {
	return component(func(m *markup) {
		m.open("div", "id", "homepage", "class", "homepage")
		m.render(HomeNavbar())
		m.render(HomeBanner())
		m.render(HomeFooter(now))
		m.close("div")
	})
}

// LoginPage links to the external sign-in service.
func LoginPage(authURL string) templ.Component {
	return component(func(m *markup) {
		m.open("main", "id", "login", "class", "login")
		m.el("h1", "Sign in to Formbot")
		if authURL == "" {
			m.el("p", "No sign-in service is configured. Set ui.auth_url to enable login.", "class", "error")
		} else {
			m.el("a", "Continue to sign in", "class", "btn btn-primary", "href", authURL)
		}
		m.el("a", "Back to home", "class", "btn btn-ghost", "href", "/")
		m.close("main")
	})
}
