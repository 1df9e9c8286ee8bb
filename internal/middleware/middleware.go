package middleware

import (
	"github.com/gin-gonic/gin"
)

// Middleware 全局中间件的装载器，与业务路由一样实现Load接口
type Middleware struct{}

func NewMiddleware() *Middleware {
	return &Middleware{}
}

func (m *Middleware) Load(g *gin.Engine) {
	g.Use(gin.Recovery())
	g.Use(RequestId())
	g.Use(Logger)
	g.Use(Options())
	g.Use(Secure())
}
