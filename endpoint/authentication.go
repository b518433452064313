package endpoint

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carelog/hospital-admin/config"
	"github.com/carelog/hospital-admin/middleware"
	"github.com/carelog/hospital-admin/model"
	"github.com/carelog/hospital-admin/util"
	"github.com/carelog/hospital-admin/validation"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const (
	sessionTTL         = 24 * time.Hour
	maxFailedAttempts  = 5
	accountLockoutTime = 15 * time.Minute
)

// clientInfo captures the request origin for audit logging.
type clientInfo struct {
	IP    string
	Agent string
}

// Register creates a new account with role "user".
func Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validation.ValidateRegistration(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg:    "Invalid Form Data",
			Err:    err,
			Fields: err,
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if !ensureEmailAvailable(c, db, req.Email) {
		return
	}

	salt, err := util.GenerateSalt()
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to generate password salt", Err: err})
		return
	}
	hashedPassword, err := util.HashPassword(req.Password, salt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to hash password", Err: err})
		return
	}

	newUser := model.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     hashedPassword,
		PasswordSalt: salt,
		Role:         model.RoleUser,
	}
	if err := db.Create(&newUser).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create new user", Err: err})
		return
	}

	util.LogSignupSuccess(newUser.ID, newUser.Email, c.ClientIP(), c.Request.UserAgent())

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "User registered successfully",
	})
}

// Login authenticates email/password credentials, records a session, and sets
// the session_token and role cookies.
func Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	if err := validation.ValidateLogin(req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg:    "Invalid Form Data",
			Err:    err,
			Fields: err,
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	ci := clientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}

	var user model.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "user not found")
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "User not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return
	}

	if locked, expiry := isAccountLocked(&user); locked {
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "account locked")
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Account is locked until %s due to multiple failed login attempts", expiry.Format(time.RFC3339)),
			Err: fmt.Errorf("account locked"),
		})
		return
	}

	match, err := util.VerifyPassword(req.Password, user.Password, user.PasswordSalt)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Password verification failed", Err: err})
		return
	}
	if !match {
		incrementFailedAttempts(db, &user, ci)
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "invalid password")
		util.CallUserError(c, util.APIErrorParams{Msg: "Invalid email or password", Err: fmt.Errorf("invalid password")})
		return
	}

	if err := resetFailedAttempts(db, &user); err != nil {
		util.LogLoginFailure(req.Email, ci.IP, ci.Agent, "failed to reset failed attempts")
	}

	token, err := createSessionToken(user)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	session := model.Session{
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    time.Now().Add(sessionTTL),
		ClientIP:     ci.IP,
		UserAgent:    ci.Agent,
	}
	if err := db.Create(&session).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to record session", Err: err})
		return
	}

	cacheSession(session, user.Role)
	setAuthCookies(c, token, user.Role)

	util.LogLoginSuccess(user.ID, user.Email, ci.IP, ci.Agent)
	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg: "Login successfully",
	})
}

// Logout invalidates the caller's session and clears the auth cookies.
func Logout(c *gin.Context) {
	token := middleware.SessionTokenFromRequest(c)

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var session model.Session
	if err := db.Where("session_token = ?", token).First(&session).Error; err == nil {
		var user model.User
		if err := db.First(&user, "id = ?", session.UserID).Error; err == nil {
			util.LogLogout(user.ID, user.Email, c.ClientIP(), c.Request.UserAgent())
		}

		if err := db.Delete(&session).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to logout", Err: err})
			return
		}

		_ = util.RemoveSessionTokenFromUserSet(session.UserID, token)
	}

	if rdb := config.GetRedisClient(); rdb != nil {
		_ = rdb.Del(context.Background(), util.SessionKey(token)).Err()
	}

	clearAuthCookies(c)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Logged out successfully",
	})
}

func ensureEmailAvailable(c *gin.Context, db *gorm.DB, email string) bool {
	var existingUser model.User
	err := db.First(&existingUser, "email = ?", email).Error
	if err != gorm.ErrRecordNotFound {
		if err == nil {
			util.CallUserError(c, util.APIErrorParams{Msg: "Email already exists", Err: fmt.Errorf("email already exists")})
			return false
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Database error", Err: err})
		return false
	}
	return true
}

func isAccountLocked(user *model.User) (bool, time.Time) {
	if user.LockedUntil != nil && *user.LockedUntil > time.Now().Unix() {
		return true, time.Unix(*user.LockedUntil, 0)
	}
	return false, time.Time{}
}

func incrementFailedAttempts(db *gorm.DB, user *model.User, ci clientInfo) {
	user.FailedAttempts++
	if user.FailedAttempts >= maxFailedAttempts {
		lockUntil := time.Now().Add(accountLockoutTime).Unix()
		user.LockedUntil = &lockUntil
		util.LogAccountLocked(user.ID, user.Email, ci.IP, "too many failed login attempts")
		// A locked account also loses its cached sessions.
		_ = util.InvalidateUserSessions(user.ID)
	}
	if err := db.Save(user).Error; err != nil {
		util.LogLoginFailure(user.Email, ci.IP, ci.Agent, "failed to update failed attempts")
	}
}

func resetFailedAttempts(db *gorm.DB, user *model.User) error {
	if user.FailedAttempts > 0 || user.LockedUntil != nil {
		user.FailedAttempts = 0
		user.LockedUntil = nil
		return db.Save(user).Error
	}
	return nil
}

func createSessionToken(user model.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(util.GetJWTSecretByte())
}

// cacheSession stores the session in Redis for fast auth lookups (best-effort).
func cacheSession(session model.Session, role model.Role) {
	exp := time.Until(session.ExpiresAt)
	_ = util.CacheSession(session.SessionToken, session.UserID, string(role), exp)
	_ = util.AddSessionToUserSet(session.UserID, session.SessionToken, exp)
}

func setAuthCookies(c *gin.Context, token string, role model.Role) {
	maxAge := int(sessionTTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token, maxAge, "/", "", false, true)
	c.SetCookie(middleware.RoleCookieName, string(role), maxAge, "/", "", false, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.SetCookie(middleware.RoleCookieName, "", -1, "/", "", false, true)
}
