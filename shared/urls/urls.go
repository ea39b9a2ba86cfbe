package urls

import (
	neturl "net/url"
	"sort"

	"github.com/dracory/spacebase/shared/constants"
	"github.com/samber/lo"
)

// ActionParam is the query key that selects behavior. It is set once at
// startup from the configuration.
var ActionParam = "action"

// Login builds the URL of the login page.
func Login(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionPageLogin, params...)
}

// Logout builds the URL of the logout page.
func Logout(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionPageLogout, params...)
}

// Home builds the URL of the home page.
func Home(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionPageHome, params...)
}

// Table builds the URL of the table page for table.
func Table(basePath, table string, params ...map[string]string) string {
	p := lo.Assign(lo.FirstOr(params, map[string]string{}), map[string]string{"table": table})
	return URL(basePath, constants.ActionPageTable, p)
}

// Database builds the URL of the database management page.
func Database(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionPageDatabase, params...)
}

// Connect builds the URL of the connect endpoint.
func Connect(basePath string, params ...map[string]string) string {
	return URL(basePath, constants.ActionApiConnect, params...)
}

// BrowseRows builds the URL for browsing table rows
func BrowseRows(basePath, table string, params ...map[string]string) string {
	p := lo.Assign(lo.FirstOr(params, map[string]string{}), map[string]string{"table": table})
	return URL(basePath, constants.ActionApiRowsBrowse, p)
}

// URL is a convenience wrapper around Build.
func URL(basePath, action string, params ...map[string]string) string {
	return Build(basePath, action, params...)
}

// Build constructs a URL like: basePath?action=name&k=v...
// Keys are sorted for stable output. Values are URL-escaped.
func Build(basePath, action string, params ...map[string]string) string {
	p := lo.FirstOr(params, map[string]string{})

	// Ensure basePath starts with '/'
	if basePath == "" || basePath[0] != '/' {
		basePath = "/" + basePath
	}
	q := neturl.Values{}
	if action != "" {
		q.Set(ActionParam, action)
	}
	if len(p) > 0 {
		keys := make([]string, 0, len(p))
		for k := range p {
			if k == "" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			q.Set(k, p[k])
		}
	}
	enc := q.Encode()
	if enc == "" {
		return basePath
	}
	return basePath + "?" + enc
}
