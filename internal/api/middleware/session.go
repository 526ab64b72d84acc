package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workhub/internal/auth"
	"workhub/internal/database"
)

// SessionCookieName 是会话令牌所在的 Cookie 名称。
const SessionCookieName = "workhub_session"

const identityKey = "sessionIdentity"

// Identity 表示当前请求的登录身份与角色，由签名 Cookie 解出。
type Identity struct {
	UserID   uint
	Username string
	Role     string
}

// SessionIdentity 校验会话 Cookie 并将身份注入上下文。
// 无 Cookie 或校验失败时继续放行，由具体路由的角色门禁决定去向。
func SessionIdentity(sessionService *auth.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := sessionService.Validate(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(identityKey, Identity{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Next()
	}
}

// IdentityFromContext 返回上下文中的登录身份。
func IdentityFromContext(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	identity, ok := value.(Identity)
	return identity, ok
}

// RequireRole 要求当前身份具备指定角色。
// 未登录跳转到登录方式选择页；角色不符跳转到 /dashboard 由其按角色分流。
// 门禁只重定向，从不返回错误状态码。
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			c.Redirect(http.StatusFound, "/logintype")
			c.Abort()
			return
		}
		if identity.Role != role {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireWorker 仅放行求职者角色。
func RequireWorker() gin.HandlerFunc {
	return RequireRole(database.RoleWorker)
}

// RequireBusiness 仅放行企业角色。
func RequireBusiness() gin.HandlerFunc {
	return RequireRole(database.RoleBusiness)
}
