package middlewares

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Luismorlan/blogmux/model"
	"github.com/Luismorlan/blogmux/store"
	. "github.com/Luismorlan/blogmux/utils/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

const (
	// gin context key holding the *model.User of an identified request.
	CurrentUserKey = "current_user"

	TokenCookieName = "token"
	TokenQueryParam = "token"
	NextQueryParam  = "next"
)

var ErrInvalidToken = errors.New("invalid token")

// Authenticator maps an access token to the username it was issued to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (username string, err error)
}

// CognitoAuthenticator validates access tokens against a Cognito user pool.
// The client is thread safe.
type CognitoAuthenticator struct {
	client *cognitoidentityprovider.Client
}

// NewCognitoAuthenticator creates a client with aws config located in path
// ~/.aws/config.
func NewCognitoAuthenticator(ctx context.Context) (*CognitoAuthenticator, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fail to load aws config")
	}
	return &CognitoAuthenticator{client: cognitoidentityprovider.NewFromConfig(cfg)}, nil
}

func (a *CognitoAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	user, err := a.client.GetUser(ctx, &cognitoidentityprovider.GetUserInput{AccessToken: aws.String(token)})
	if err != nil {
		return "", errors.Wrap(ErrInvalidToken, err.Error())
	}
	return aws.ToString(user.Username), nil
}

// StaticAuthenticator accepts a fixed set of tokens, for development and
// tests.
type StaticAuthenticator map[string]string

func (a StaticAuthenticator) Authenticate(ctx context.Context, token string) (string, error) {
	username, ok := a[token]
	if !ok {
		return "", ErrInvalidToken
	}
	return username, nil
}

// requestToken looks for the access token in the Authorization header, then
// the token cookie, then the token query parameter.
func requestToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	return c.Query(TokenQueryParam)
}

// Identify resolves the caller of every request. A request with a valid
// token carries its *model.User under CurrentUserKey, any other request is
// anonymous. It never rejects a request, see LoginRequired.
func Identify(auth Authenticator, st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c)
		if token == "" {
			c.Next()
			return
		}

		username, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			Log.WithError(err).Info("treat request with rejected token as anonymous")
			c.Next()
			return
		}

		user, err := st.GetOrCreateUser(username)
		if err != nil {
			Log.WithError(err).Error("fail to load authenticated user")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
			c.Abort()
			return
		}
		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the identified caller, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}

// LoginURL returns loginURL with the next parameter pointing back at uri.
func LoginURL(loginURL string, uri string) string {
	return loginURL + "?" + url.Values{NextQueryParam: {uri}}.Encode()
}

// LoginRequired redirects anonymous callers to the login flow.
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginURL(loginURL, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
