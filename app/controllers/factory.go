package controllers

import (
	"github.com/aihub/docqa-go/internal/auth"
	"github.com/aihub/docqa-go/internal/docqa"
	"github.com/aihub/docqa-go/internal/services"
)

// Beego为每个请求新建controller实例，共享依赖通过包级变量注入
var (
	sharedJWTService  *auth.JWTService
	sharedDocService  *docqa.Service
	sharedUserService *services.UserService
)

// InitControllers 注入controller共享依赖，必须在路由注册前调用
func InitControllers(jwt *auth.JWTService, doc *docqa.Service, users *services.UserService) {
	sharedJWTService = jwt
	sharedDocService = doc
	sharedUserService = users
}

// JWTService 返回共享JWT服务
func JWTService() *auth.JWTService {
	return sharedJWTService
}

// DocService 返回共享文档问答服务
func DocService() *docqa.Service {
	return sharedDocService
}

// UserService 返回共享用户服务
func UserService() *services.UserService {
	return sharedUserService
}
