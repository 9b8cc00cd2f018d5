package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"societyhub/auth"
	"societyhub/config"
	"societyhub/models"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DisplayName string `json:"displayName" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	account, err := identityProvider.Register(ctx, req.Email, req.Password, req.DisplayName)
	if err != nil {
		writeError(c, err, "Failed to create account")
		return
	}

	// Mirror the account into the users collection; restriction and audit
	// fields live there.
	mirror := &models.WebsiteUser{
		UID:         account.UID,
		Email:       account.Email,
		DisplayName: account.DisplayName,
		CreatedAt:   time.Now().Unix(),
	}
	if err := usersStore.Upsert(ctx, mirror); err != nil {
		writeError(c, err, "Failed to create account")
		return
	}

	token, err := auth.IssueToken(account.UID, config.Global.JWT.Secret, config.Global.JWT.Expire)
	if err != nil {
		writeError(c, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"uid":     account.UID,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqContext()
	defer cancel()

	account, err := identityProvider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		writeError(c, err, "Failed to log in")
		return
	}

	token, err := auth.IssueToken(account.UID, config.Global.JWT.Secret, config.Global.JWT.Expire)
	if err != nil {
		writeError(c, err, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"uid":     account.UID,
	})
}

// GetMe returns the caller's provider account merged with the mirror's
// restriction fields.
func GetMe(c *gin.Context) {
	uid := c.GetString("uid")

	ctx, cancel := reqContext()
	defer cancel()

	account, err := identityProvider.GetAccount(ctx, uid)
	if err != nil {
		writeError(c, err, "Failed to fetch account")
		return
	}

	response := gin.H{
		"uid":         account.UID,
		"email":       account.Email,
		"displayName": account.DisplayName,
		"restricted":  false,
	}
	if mirror, err := usersStore.Get(ctx, uid); err == nil {
		response["restricted"] = mirror.Restricted
		if mirror.Restricted {
			response["restrictionReason"] = mirror.RestrictionReason
		}
	}

	c.JSON(http.StatusOK, response)
}
