package authentication

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"career-pathways-backend/config"
	"career-pathways-backend/models/users"
)

var googleOauthConfig = &oauth2.Config{
	RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
	ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
	ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
	Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
	Endpoint:     google.Endpoint,
}

const oauthStateKey = "oauth-state"

// HandleGoogleLogin starts the OAuth flow, stashing the state nonce in the
// session cookie.
func HandleGoogleLogin(c *gin.Context) {
	state := randomState()
	session, _ := config.Store.Get(c.Request, "session-name")
	session.Values[oauthStateKey] = state
	if err := session.Save(c.Request, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save session"})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, googleOauthConfig.AuthCodeURL(state))
}

// HandleGoogleCallback exchanges the code, fetches the Google account and
// signs the user in, creating the account on first login.
func HandleGoogleCallback(c *gin.Context) {
	session, _ := config.Store.Get(c.Request, "session-name")
	expected, _ := session.Values[oauthStateKey].(string)
	if expected == "" || c.Query("state") != expected {
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	token, err := googleOauthConfig.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.Redirect(http.StatusTemporaryRedirect, "/")
		return
	}

	svc, err := oauth2api.NewService(c.Request.Context(),
		option.WithTokenSource(googleOauthConfig.TokenSource(c.Request.Context(), token)))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build Google client"})
		return
	}
	info, err := svc.Userinfo.Get().Do()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch user info"})
		return
	}

	var user users.User
	err = config.DB.Where("email = ? AND provider = ?", info.Email, "google").First(&user).Error
	if err != nil {
		user = users.User{
			Name:     info.Name,
			Email:    info.Email,
			Role:     "student",
			Provider: "google",
		}
		if err := config.DB.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
			return
		}
	}

	tokenString, err := issueToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
		return
	}
	user.AccessToken = tokenString
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

func randomState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "state"
	}
	return hex.EncodeToString(b)
}
