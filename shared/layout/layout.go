package layout

import (
	"encoding/json"
	"html/template"

	"github.com/dracory/spacebase/shared/urls"
	hb "github.com/gouniverse/hb"
)

// Options bundles parameters for rendering the full HTML layout.
type Options struct {
	Title           string
	BasePath        string
	SafeModeDefault bool
	ReadOnlyMode    bool
	// Connected shows the navigation for a connected session.
	Connected bool
	// ConnectionLabel is shown in the header, e.g. "localhost:3000 / game".
	ConnectionLabel string
	MainHTML        string
	// SidebarHTML, when provided, renders on the left of the main content.
	SidebarHTML  string
	ExtraHead    []hb.TagInterface
	ExtraBodyEnd []hb.TagInterface
}

// RenderWith builds the full HTML using the provided options struct.
func RenderWith(o Options) template.HTML {
	headChildren := []hb.TagInterface{
		hb.NewTag("meta").Attr("charset", "utf-8"),
		hb.NewTag("meta").Attr("name", "viewport").Attr("content", "width=device-width, initial-scale=1"),
		hb.NewTag("title").Text(o.Title + " · SpaceBase"),
		hb.ScriptURL("https://cdn.tailwindcss.com"),
		hb.Style(baseCSS),
	}
	headChildren = append(headChildren, o.ExtraHead...)

	nav := hb.Nav().Class("sb-nav")
	if o.Connected {
		nav.Children([]hb.TagInterface{
			hb.A().Href(urls.Home(o.BasePath)).Text("Tables"),
			hb.A().Href(urls.Database(o.BasePath)).Text("Databases"),
			hb.A().Href(urls.Logout(o.BasePath)).Text("Disconnect"),
		})
	} else {
		nav.Child(hb.A().Href(urls.Login(o.BasePath)).Text("Connect"))
	}

	header := hb.Header().
		Class("sb-header").
		Child(
			hb.Div().
				Class("sb-container").
				Children([]hb.TagInterface{
					hb.Heading1().
						Class("sb-title").
						Child(hb.A().Href(urls.Home(o.BasePath)).Text("SpaceBase")),
					nav,
				}).
				ChildIf(o.ConnectionLabel != "", hb.Div().Class("sb-connection").Text("Connected to "+o.ConnectionLabel)),
		)

	main := hb.Main().Class("sb-main grow p-4").
		Child(hb.Div().Class("sb-container").Child(hb.Raw(o.MainHTML)))

	shell := hb.Div().Class("sb-shell flex min-h-[60vh]").
		ChildIf(o.SidebarHTML != "", hb.Aside().Class("sb-sidebar shrink-0 border-r border-gray-200 bg-gray-50 p-3 w-60").Child(hb.Raw(o.SidebarHTML))).
		Child(main)

	modes := "Safe mode: OFF"
	if o.SafeModeDefault {
		modes = "Safe mode: ON"
	}
	if o.ReadOnlyMode {
		modes += " · Read-only"
	}
	footer := hb.Footer().Class("sb-footer sb-container").Child(
		hb.NewTag("small").Text(modes),
	)

	bodyChildren := []hb.TagInterface{header, shell, footer, hb.Script(baseJS)}
	bodyChildren = append(bodyChildren, o.ExtraBodyEnd...)

	html := hb.NewTag("html").
		Attr("lang", "en").
		Children([]hb.TagInterface{
			hb.NewTag("head").Children(headChildren),
			hb.NewTag("body").Children(bodyChildren),
		})

	return template.HTML("<!doctype html>" + html.ToHTML())
}

// AppConfig exposes values to page scripts as window.appConfig.
func AppConfig(values map[string]any) hb.TagInterface {
	b, err := json.Marshal(values)
	if err != nil {
		b = []byte("{}")
	}
	return hb.Script("window.appConfig = " + string(b) + ";")
}

// baseJS posts forms and reads envelopes for every page. Errors come back as
// {status:"error"} with HTTP 200.
const baseJS = `
window.sb = {
  csrf() { return (window.appConfig && window.appConfig.csrfToken) || ""; },
  async request(method, url, data) {
    const opts = { method, headers: { "X-CSRF-Token": this.csrf() }, credentials: "same-origin" };
    if (method === "GET" && data) {
      const q = new URLSearchParams(data).toString();
      if (q) url += (url.includes("?") ? "&" : "?") + q;
    } else if (data instanceof FormData) {
      opts.body = data;
    } else if (data) {
      opts.body = new URLSearchParams(data);
    }
    const res = await fetch(url, opts);
    const env = await res.json();
    if (env.status !== "success") throw new Error(env.message || "request failed");
    return env;
  },
  get(url, data) { return this.request("GET", url, data); },
  post(url, data) { return this.request("POST", url, data); },
  toast(icon, title) {
    if (window.Swal) {
      Swal.fire({ toast: true, position: "top-end", timer: 3000, showConfirmButton: false, icon, title });
    } else {
      alert(title);
    }
  },
  async confirm(title, text) {
    if (!window.Swal) return window.confirm(title + "\n" + text);
    const r = await Swal.fire({ title, text, icon: "warning", showCancelButton: true, confirmButtonText: "Yes, continue" });
    return r.isConfirmed;
  },
};
`

const baseCSS = `
.sb-header{background:#0f172a;color:#f8fafc;padding:.75rem 1rem}
.sb-header a{color:inherit;text-decoration:none}
.sb-title{font-size:1.25rem;font-weight:700;display:inline-block;margin-right:1.5rem}
.sb-nav{display:inline-flex;gap:1rem}
.sb-connection{font-size:.85rem;opacity:.8}
.sb-container{max-width:80rem;margin:0 auto}
.sb-footer{padding:1rem;color:#64748b}
`
