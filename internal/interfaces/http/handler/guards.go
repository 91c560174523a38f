package handler

import "github.com/gin-gonic/gin"

// Guards bundles the route protection middleware handed to handlers. Auth
// requires a valid session, Admin additionally requires the admin role.
type Guards struct {
	Auth  gin.HandlerFunc
	Admin gin.HandlerFunc
}
