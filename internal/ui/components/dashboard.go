package components

import (
	"net/url"

	"github.com/a-h/templ"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/formbot/internal/dashboard"
)

// ShellID is the id of the element patched on every update.
const ShellID = "dashboard"

// DashboardProps holds what the dashboard components render.
type DashboardProps struct {
	ViewID       string
	State        dashboard.State
	WorkspaceURL string
	IsDev        bool
}

// action returns the Datastar expression posting to a view action.
func (p DashboardProps) action(path string) string {
	return "@post('/dashboard/" + url.PathEscape(p.ViewID) + "/" + path + "')"
}

// DashboardPage renders the full dashboard document.
func DashboardPage(p DashboardProps) templ.Component {
	return Layout(Page{Title: "Dashboard", Theme: p.State.Theme, IsDev: p.IsDev}, component(func(m *markup) {
		m.open("div",
			"id", "dashboard-root",
			"data-signals__ifmissing", "{folderName: '', shareEmail: '', pointer: ''}",
			"data-init", "@get('/dashboard/"+url.PathEscape(p.ViewID)+"/updates')",
		)
		m.render(DashboardShell(p))
		m.close("div")
	}))
}

// DashboardShell is the patchable dashboard body.
func DashboardShell(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		s := p.State
		m.open("main",
			"id", ShellID,
			"class", withClass("dashboard "+s.Theme.String(), "loading", s.Loading),
			"data-view", p.ViewID,
		)
		m.render(Navbar(p))
		m.open("div", "id", "dashboard-section", "class", "section")

		m.open("div", "id", "folders", "class", "folders")
		m.open("button", "id", "create-folder-open", "class", "create-open", "data-on:click", p.action("create/open"))
		m.el("span", "Create a folder")
		m.close("button")
		m.render(FolderList(p))
		m.close("div")

		m.open("div", "id", "forms", "class", "forms")
		m.open("a", "id", "create-form-card", "class", "card", "href", p.WorkspaceURL)
		m.el("span", "+", "class", "plus")
		m.el("span", "Create a typebot")
		m.close("a")
		m.render(FormList(p))
		m.close("div")

		m.close("div")

		switch s.Modal {
		case dashboard.ModalCreateFolder:
			m.render(CreateFolderModal(p))
		case dashboard.ModalDelete:
			m.render(DeleteModal(p))
		case dashboard.ModalShare:
			m.render(ShareModal(p))
		}
		m.close("main")
	})
}

// Navbar renders the workspace dropdown, theme switch and share button.
func Navbar(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		s := p.State
		m.open("nav", "id", "navbar", "class", "navbar")

		m.open("div", "id", "workspace-menu", "class", withClass("dropdown", "show", s.WorkspaceMenu))
		m.open("button", "id", "workspace-menu-toggle", "class", "dropdown-btn", "data-on:click", p.action("workspace-menu"))
		m.el("span", s.WorkspaceLabel())
		m.el("span", "▾", "class", "arrow-down")
		m.close("button")
		if s.WorkspaceMenu {
			m.open("div", "id", "workspace-menu-content", "class", "dropdown-content")
			m.el("a", "Settings", "href", "/settings")
			m.open("form", "method", "post", "action", "/logout")
			m.el("button", "Logout", "id", "logout", "class", "logout", "type", "submit")
			m.close("form")
			m.close("div")
		}
		m.close("div")

		dark := s.Theme.IsDark()
		m.open("div", "id", "theme-switch", "class", "slider-container")
		m.el("span", "Light")
		m.open("label", "class", "switch")
		checkbox := []string{"id", "theme-toggle", "type", "checkbox", "data-on:change", p.action("theme")}
		if dark {
			checkbox = append(checkbox, "checked", "")
		}
		m.open("input", checkbox...)
		m.el("span", "", "class", "slider")
		m.close("label")
		m.el("span", "Dark")
		m.close("div")

		m.el("button", "Share", "id", "share-open", "class", "btn btn-primary", "data-on:click", p.action("share/open"))
		m.close("nav")
	})
}

// FolderList renders folders in the order received.
func FolderList(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		m.open("ul", "id", "folder-list", "class", "folder-list")
		for _, f := range p.State.Folders {
			m.open("li", "id", "folder-"+f.ID, "class", "folder")
			m.el("span", f.Name, "class", "name")
			m.el("button", "Delete",
				"id", "folder-"+f.ID+"-delete",
				"class", "delete",
				"aria-label", "Delete folder "+f.Name,
				"data-on:click", p.action("delete/open?kind=folder&id="+url.QueryEscape(f.ID)),
			)
			m.close("li")
		}
		m.close("ul")
	})
}

// FormList renders forms in the order received.
func FormList(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		m.open("ul", "id", "form-list", "class", "form-list")
		for _, f := range p.State.Forms {
			m.open("li", "id", "form-"+f.ID, "class", "card form-card", "data-type", f.Type)
			m.el("span", f.Name, "class", "name")
			m.el("button", "Delete",
				"id", "form-"+f.ID+"-delete",
				"class", "delete",
				"aria-label", "Delete form "+f.Name,
				"data-on:click", p.action("delete/open?kind=form&id="+url.QueryEscape(f.ID)),
			)
			m.close("li")
		}
		m.close("ul")
	})
}

// CreateFolderModal is the controlled create-folder form.
func CreateFolderModal(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		s := p.State
		m.open("div", "id", "create-folder-modal", "class", "modal", "role", "dialog")
		m.el("h2", "Create New Folder")
		m.open("input",
			"id", "create-folder-input",
			"type", "text",
			"placeholder", "Enter folder name",
			"value", s.FolderName,
			"data-bind:folder-name", "",
			"data-on:keydown", "evt.key === 'Enter' && "+p.action("create"),
		)
		if s.FolderNameError != "" {
			m.el("p", s.FolderNameError, "id", "create-folder-error", "class", "error")
		}
		m.open("div", "class", "modal-actions")
		m.el("button", "Done", "id", "create-folder-submit", "class", "btn btn-primary", "data-on:click", p.action("create"))
		m.el("button", "Cancel", "id", "create-folder-cancel", "class", "btn btn-ghost", "data-on:click", p.action("modal/close"))
		m.close("div")
		m.close("div")
	})
}

var titleCaser = cases.Title(language.English)

// KindLabel returns the display label of an entity kind.
func KindLabel(k dashboard.EntityKind) string {
	return titleCaser.String(string(k))
}

// DeleteModal asks for confirmation; its title names the entity kind.
func DeleteModal(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		kind := p.State.Target.Kind
		m.open("div", "id", "delete-modal", "class", "modal", "role", "dialog", "data-kind", string(kind))
		m.el("h2", "Are you sure you want to delete this "+string(kind)+"?")
		m.open("div", "class", "modal-actions")
		m.el("button", "Confirm", "id", "delete-confirm", "class", "btn btn-danger", "data-on:click", p.action("delete"))
		m.el("button", "Cancel", "id", "delete-cancel", "class", "btn btn-ghost", "data-on:click", p.action("modal/close"))
		m.close("div")
		m.el("small", "Deleting a "+KindLabel(kind)+" cannot be undone.", "class", "hint")
		m.close("div")
	})
}

// ShareModal is the invite-by-email modal. While it is open, pointer events
// anywhere on the page are reported so a click outside closes it.
func ShareModal(p DashboardProps) templ.Component {
	return component(func(m *markup) {
		sh := p.State.Share
		m.open("div",
			"id", "share-backdrop",
			"class", "modal-backdrop",
			"data-on:pointerdown__window", "$pointer = evt.target.closest('[id]')?.id ?? ''; "+p.action("pointer"),
		)
		m.open("div", "id", dashboard.ShareRegion.ID, "class", "modal share-modal", "role", "dialog")
		m.el("button", "X", "id", "share-modal-close", "class", "close-btn", "data-on:click", p.action("modal/close"))
		m.el("h2", "Invite by Email")

		m.open("div", "id", "share-modal-permission", "class", "dropdown")
		m.el("button", string(sh.Permission), "id", "share-modal-permission-toggle", "class", "dropdown-btn", "data-on:click", p.action("share/permission-menu"))
		if sh.PermissionMenu {
			m.open("div", "id", "share-modal-permission-menu", "class", "dropdown-menu")
			for _, perm := range []dashboard.Permission{dashboard.PermissionEdit, dashboard.PermissionView} {
				m.el("button", string(perm),
					"id", "share-modal-permission-"+string(perm),
					"class", withClass("dropdown-option", "selected", perm == sh.Permission),
					"data-on:click", p.action("share/permission?value="+url.QueryEscape(string(perm))),
				)
			}
			m.close("div")
		}
		m.close("div")

		m.open("div", "id", "share-modal-input", "class", "input-box")
		emailAttrs := []string{
			"id", "share-modal-email",
			"type", "email",
			"placeholder", "Enter email id",
			"value", sh.Email,
			"data-bind:share-email", "",
		}
		m.open("input", emailAttrs...)
		submit := []string{"id", "share-modal-submit", "class", "btn btn-primary", "data-on:click", p.action("share")}
		if sh.Pending {
			submit = append(submit, "disabled", "")
		}
		m.el("button", "Send Invite", submit...)
		m.close("div")

		if detail := sh.Outcome.Detail(); detail != "" {
			cls := withClass("share-outcome", "error", sh.Outcome.Err != nil)
			cls = withClass(cls, "partial", sh.Outcome.Partial())
			m.el("p", detail, "id", "share-modal-outcome", "class", cls)
		}
		m.close("div")
		m.close("div")
	})
}
