package googleauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"gymcore/internal/auth"
	"gymcore/internal/logger"
	"gymcore/internal/metrics"
	"gymcore/internal/user"
)

const userInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

const (
	stateCookie = "oauth_state"
	stateMaxAge = 300
)

type userInfo struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type Handler struct {
	oauth       *oauth2.Config
	users       user.Service
	jwtSecret   string
	frontendURL string
}

func NewHandler(clientID, clientSecret, redirectURL string, users user.Service, jwtSecret, frontendURL string) *Handler {
	return &Handler{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		users:       users,
		jwtSecret:   jwtSecret,
		frontendURL: frontendURL,
	}
}

// Login godoc
// @Summary  Start Google OAuth flow
// @Tags     auth
// @Success  307
// @Router   /auth/google [get]
func (h *Handler) Login(c *gin.Context) {
	state, err := newState()
	if err != nil {
		h.failRedirect(c, "authentication_failed")
		return
	}

	// The callback compares this cookie against the state Google echoes
	// back, so a forged callback URL cannot complete the flow.
	c.SetCookie(stateCookie, state, stateMaxAge, "/", "", false, true)

	authURL := h.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Callback godoc
// @Summary      Google OAuth callback
// @Description  Exchanges the authorization code, finds or creates the user and redirects back to the frontend with a JWT. Failures redirect with an error query parameter.
// @Tags         auth
// @Success      302
// @Router       /auth/google/callback [get]
func (h *Handler) Callback(c *gin.Context) {
	wantState, err := c.Cookie(stateCookie)
	if err != nil || wantState == "" || c.Query("state") != wantState {
		h.failRedirect(c, "invalid_state")
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.failRedirect(c, "no_code")
		return
	}

	ctx := c.Request.Context()
	token, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		logger.Errorf("Google token exchange failed: %v", err)
		h.failRedirect(c, "token_retrieval_failed")
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		logger.Errorf("Google userinfo request failed: %v", err)
		h.failRedirect(c, "user_info_failed")
		return
	}
	if info.Email == "" {
		h.failRedirect(c, "user_info_failed")
		return
	}

	username := usernameFor(info)
	account, roles, err := h.users.FindOrCreateByEmail(ctx, username, info.Email)
	if err != nil {
		logger.Errorf("OAuth user lookup failed for %s: %v", info.Email, err)
		h.failRedirect(c, "authentication_failed")
		return
	}

	jwtToken, err := auth.GenerateToken(account.ID, account.Username, account.Email, roles, h.jwtSecret)
	if err != nil {
		logger.Errorf("Token generation failed for user %d: %v", account.ID, err)
		h.failRedirect(c, "authentication_failed")
		return
	}

	payload, err := json.Marshal(gin.H{
		"id":       account.ID,
		"username": account.Username,
		"email":    account.Email,
		"roles":    roles,
		"token":    jwtToken,
	})
	if err != nil {
		h.failRedirect(c, "authentication_failed")
		return
	}

	metrics.RecordLogin("google", "ok")
	c.Redirect(http.StatusFound, h.frontendURL+"/login/oauth?data="+url.QueryEscape(string(payload)))
}

func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*userInfo, error) {
	resp, err := h.oauth.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var info userInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

func (h *Handler) failRedirect(c *gin.Context, code string) {
	metrics.RecordLogin("google", "failed")
	c.Redirect(http.StatusFound, h.frontendURL+"/login/oauth?error="+code)
}

func usernameFor(info *userInfo) string {
	if info.Name != "" {
		return sanitizeUsername(info.Name)
	}
	for i := 0; i < len(info.Email); i++ {
		if info.Email[i] == '@' {
			return info.Email[:i]
		}
	}
	return info.Email
}

func sanitizeUsername(name string) string {
	out := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			out = append(out, ch+('a'-'A'))
		case ch == ' ':
			out = append(out, '_')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
