package user

import (
	"net/http"

	"github.com/JacobHeater/upsign/global/config"
	"github.com/JacobHeater/upsign/logger"
	mid "github.com/JacobHeater/upsign/middleware"
	midsec "github.com/JacobHeater/upsign/middleware/security"
	usersvc "github.com/JacobHeater/upsign/module/user/service"
	"github.com/JacobHeater/upsign/tools/errs"
	jwtlib "github.com/JacobHeater/upsign/tools/security"

	"github.com/gin-gonic/gin"
)

type requestCodeBody struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyCodeBody struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

type updateProfileBody struct {
	Nickname string `json:"nickname"`
	FaceURL  string `json:"faceUrl"`
}

func jwtOptions() jwtlib.Options {
	opts := jwtlib.DefaultOptions(config.GetJwtSecret())
	opts.TTL = config.TokenTTL()
	return opts
}

// HandlerRequestCode starts the OTP login flow for a phone number.
func HandlerRequestCode(c *gin.Context) {
	var body requestCodeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	code, err := usersvc.RequestCode(body.Phone, config.OTPTTL())
	if err != nil {
		logger.Errorf("request code phone=%s: %v", body.Phone, err)
		c.JSON(http.StatusInternalServerError, errs.ErrInternal)
		return
	}
	// SMS gateway hook goes here; the code stays server-side
	logger.Infof("otp issued phone=%s code=%s", body.Phone, code)
	c.JSON(http.StatusOK, gin.H{"sent": true})
}

// HandlerVerifyCode finishes login: exchanges phone+code for a session token.
func HandlerVerifyCode(c *gin.Context) {
	var body verifyCodeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	u, token, err := usersvc.VerifyCode(c.Request.Context(), jwtOptions(), body.Phone, body.Code)
	if err != nil {
		if errs.ErrOTPInvalid.Is(err) {
			c.JSON(http.StatusUnauthorized, errs.ErrOTPInvalid)
			return
		}
		logger.Errorf("verify code phone=%s: %v", body.Phone, err)
		c.JSON(http.StatusInternalServerError, errs.ErrInternal)
		return
	}
	c.SetCookie(config.Global.Auth.CookieName, token, int(config.TokenTTL().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func HandlerMe(c *gin.Context) {
	u, err := usersvc.GetByID(c.Request.Context(), midsec.UserID(c))
	if err != nil {
		if errs.ErrNotFound.Is(err) {
			c.JSON(http.StatusNotFound, errs.ErrNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, errs.ErrInternal)
		return
	}
	c.JSON(http.StatusOK, u)
}

func HandlerUpdateMe(c *gin.Context) {
	var body updateProfileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errs.ErrArgs)
		return
	}
	u, err := usersvc.UpdateProfile(c.Request.Context(), midsec.UserID(c), body.Nickname, body.FaceURL)
	if err != nil {
		if errs.ErrNotFound.Is(err) {
			c.JSON(http.StatusNotFound, errs.ErrNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, errs.ErrInternal)
		return
	}
	c.JSON(http.StatusOK, u)
}

// RegisterRoutes mounts the auth and profile endpoints.
func RegisterRoutes(r gin.IRoutes, authOpt mid.RouteOpt) {
	mid.POST(r, "/api/auth/request-code", HandlerRequestCode, mid.RouteOpt{})
	mid.POST(r, "/api/auth/verify", HandlerVerifyCode, mid.RouteOpt{})
	mid.GET(r, "/api/users/me", HandlerMe, authOpt)
	mid.PUT(r, "/api/users/me", HandlerUpdateMe, authOpt)
}
