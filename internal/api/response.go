package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误一律返回纯文本正文；页面流转用重定向表达，不用错误状态码。
func Error(c *gin.Context, status int, msg string) {
	c.String(status, msg)
}

func BadRequest(c *gin.Context, msg string) { Error(c, http.StatusBadRequest, msg) }
func NotFound(c *gin.Context, msg string)   { Error(c, http.StatusNotFound, msg) }
func Unauthorized(c *gin.Context, msg string) {
	Error(c, http.StatusUnauthorized, msg)
}
func Internal(c *gin.Context, msg string) { Error(c, http.StatusInternalServerError, msg) }
