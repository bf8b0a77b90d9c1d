package router

// Route names used across modules and tests.
const (
	RouteHome         = "home.index"
	RouteLoginForm    = "auth.login.form"
	RouteLogin        = "auth.login"
	RouteLogout       = "auth.logout"
	RouteUsersIndex   = "admin.users.index"
	RouteUsersCreate  = "admin.users.create"
	RouteUsersStore   = "admin.users.store"
	RouteUsersEdit    = "admin.users.edit"
	RouteUsersUpdate  = "admin.users.update"
	RouteUsersDestroy = "admin.users.destroy"
)
