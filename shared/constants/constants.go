package constants

// Action names for the single-endpoint router.
const (
	ActionHealthz = "healthz"

	ActionPageLogin    = "page_login"
	ActionPageLogout   = "page_logout"
	ActionPageHome     = "page_home"
	ActionPageTable    = "page_table"
	ActionPageDatabase = "page_database"

	ActionApiConnect    = "api_connect"
	ActionApiDisconnect = "api_disconnect"
	ActionApiStatus     = "api_status"

	ActionApiTablesList = "api_tables_list"
	ActionApiTableInfo  = "api_table_info"

	ActionApiRowsBrowse = "api_rows_browse"
	ActionApiRowView    = "api_row_view"
	ActionApiRowInsert  = "api_row_insert"
	ActionApiRowUpdate  = "api_row_update"
	ActionApiRowDelete  = "api_row_delete"

	ActionApiSQLExecute = "api_sql_execute"
	ActionApiSQLExport  = "api_sql_export"
	ActionApiSQLExplain = "api_sql_explain"

	ActionApiDatabasesList  = "api_databases_list"
	ActionApiDatabaseCreate = "api_database_create"
	ActionApiDatabaseInfo   = "api_database_info"
	ActionApiDatabaseDelete = "api_database_delete"
	ActionApiModulePublish  = "api_module_publish"

	ActionApiProfilesList   = "api_profiles_list"
	ActionApiProfilesSave   = "api_profiles_save"
	ActionApiProfilesDelete = "api_profiles_delete"
)

// Cookie names.
const (
	// CookieLastProfile remembers the profile of the last successful connection.
	CookieLastProfile = "sb_last_profile"
	// CookieCSRF holds the base value of the double-submit CSRF token.
	CookieCSRF = "sb_csrf"
)

// Connection defaults shown on the login form.
const (
	DefaultHost = "localhost"
	DefaultPort = 3000
)

// Row browsing limits.
const (
	DefaultBrowseLimit = 50
	MaxBrowseLimit     = 1000
)

// ConfirmValue is the form value required for destructive actions in safe mode.
const ConfirmValue = "yes"

// MaxModuleSize bounds a module upload.
const MaxModuleSize = 64 << 20

// ReadOnlyMessage is reported when read-only mode blocks a change.
const ReadOnlyMessage = "read-only mode: changes are disabled"
