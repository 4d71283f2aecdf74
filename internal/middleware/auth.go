package middleware

import (
	"strings"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/nikhil8824/ration-shop/internal/auth"
	"github.com/nikhil8824/ration-shop/internal/config"
	"github.com/nikhil8824/ration-shop/internal/datamodels/user"
)

const claimsKey = "auth.claims"

// Authenticate 解析 Bearer token，优先走 Redis 缓存，claims 存入请求上下文
func Authenticate(jwtCfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		header := ctx.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"success": false, "message": "Access denied. No token provided."})
			return
		}

		if cache != nil {
			if claims, hit, err := cache.Get(ctx.Request().Context(), token); err != nil {
				// 缓存故障时降级为直接解析
				zap.L().Warn("token cache get failed", zap.Error(err))
			} else if hit {
				ctx.Values().Set(claimsKey, claims)
				ctx.Next()
				return
			}
		}

		claims, err := auth.ParseToken(jwtCfg, token)
		if err != nil {
			ctx.StopWithJSON(401, iris.Map{"success": false, "message": "Invalid token."})
			return
		}
		if cache != nil {
			if err := cache.Set(ctx.Request().Context(), token, claims); err != nil {
				zap.L().Warn("token cache set failed", zap.Error(err))
			}
		}
		ctx.Values().Set(claimsKey, claims)
		ctx.Next()
	}
}

// RequireAdmin 要求管理员角色，必须在 Authenticate 之后挂载
func RequireAdmin(ctx iris.Context) {
	claims := ClaimsFrom(ctx)
	if claims == nil || claims.Role != user.RoleAdmin {
		ctx.StopWithJSON(403, iris.Map{"success": false, "message": "Access denied. Admin privileges required."})
		return
	}
	ctx.Next()
}

// ClaimsFrom 取出当前请求的 claims，未认证时返回 nil
func ClaimsFrom(ctx iris.Context) *auth.Claims {
	v := ctx.Values().Get(claimsKey)
	if v == nil {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}
