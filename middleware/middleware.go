package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carelog/hospital-admin/config"
	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	dbContextKey       = "db"
	identityContextKey = "identity"

	// SessionCookieName is the httpOnly cookie carrying the session token.
	SessionCookieName = "session_token"
	// RoleCookieName is the httpOnly cookie exposing the caller's role.
	RoleCookieName = "role"
)

// Identity is the resolved caller: set by SessionAuth, read by handlers.
// Handlers never see tokens or cookies, only this value.
type Identity struct {
	UserID string
	Role   model.Role
}

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization, session-token")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the shared gorm DB into the request context.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbContextKey, db)
		c.Next()
	}
}

// GetDB returns the DB stored by DatabaseMiddleware, or nil.
func GetDB(c *gin.Context) *gorm.DB {
	if v, ok := c.Get(dbContextKey); ok {
		if db, ok := v.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}

// GetIdentity returns the identity resolved by SessionAuth.
func GetIdentity(c *gin.Context) (Identity, bool) {
	if v, ok := c.Get(identityContextKey); ok {
		if id, ok := v.(Identity); ok {
			return id, true
		}
	}
	return Identity{}, false
}

// SessionTokenFromRequest extracts the session token from the cookie, the
// session-token header, or a bearer Authorization header, in that order.
func SessionTokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}
	if token := c.GetHeader("session-token"); token != "" {
		return token
	}
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

// SessionAuth resolves the request's session token into an Identity. The Redis
// cache is consulted first; when Redis is unavailable or misses, the sessions
// table is the source of truth. Requests without a valid, unexpired session
// are rejected with 401.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionTokenFromRequest(c)
		if token == "" {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Unauthorized",
				Err: fmt.Errorf("session token not provided"),
			})
			c.Abort()
			return
		}

		if identity, ok := identityFromRedis(token); ok {
			c.Set(identityContextKey, identity)
			c.Next()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		identity, err := identityFromDB(db, token)
		if err != nil {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Unauthorized",
				Err: err,
			})
			c.Abort()
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// identityFromRedis looks the token up in the session cache. Cached values
// have the form "<userID>:<role>".
func identityFromRedis(token string) (Identity, bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return Identity{}, false
	}
	val, err := rdb.Get(context.Background(), util.SessionKey(token)).Result()
	if err != nil {
		return Identity{}, false
	}
	parts := strings.SplitN(val, ":", 2)
	if len(parts) != 2 {
		return Identity{}, false
	}
	return Identity{UserID: parts[0], Role: model.Role(parts[1])}, true
}

func identityFromDB(db *gorm.DB, token string) (Identity, error) {
	var session model.Session
	if err := db.Where("session_token = ? AND expires_at > ?", token, time.Now()).First(&session).Error; err != nil {
		return Identity{}, fmt.Errorf("session not found or expired")
	}
	var user model.User
	if err := db.First(&user, "id = ?", session.UserID).Error; err != nil {
		return Identity{}, fmt.Errorf("session user not found")
	}
	return Identity{UserID: user.ID, Role: user.Role}, nil
}
