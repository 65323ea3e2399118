package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silverstar-dev/silverstar/internal/api"
	"github.com/silverstar-dev/silverstar/internal/session"
	"github.com/silverstar-dev/silverstar/internal/tokenstore"
)

// sessionCookie holds the bearer token for the browser session. The token
// itself stays opaque; the remote API is the only judge of its validity.
const sessionCookie = "admin_token"

const loginPath = "/admin/login"

func setSession(c *gin.Context, sess *session.Session) {
	c.Set("session", sess)
}

// GetSession returns the resolved session placed by the guard middleware.
func GetSession(c *gin.Context) (*session.Session, bool) {
	value, exists := c.Get("session")
	if !exists {
		return nil, false
	}

	sess, ok := value.(*session.Session)
	return sess, ok
}

// resolveSession builds a session from the request's cookie and settles it.
// Each request resolves independently; nothing is cached between requests.
func (s *Server) resolveSession(c *gin.Context) (*session.Session, error) {
	tokens := tokenstore.NewMemory()
	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie != "" {
		if err := tokens.Set(cookie); err != nil {
			return nil, err
		}
	}

	client := api.New(s.config.API.BaseURL, tokens, s.logger)
	sess := session.New(client, tokens, s.logger)
	if err := sess.Resolve(); err != nil {
		return nil, err
	}
	return sess, nil
}

// guardMiddleware protects the back-office. The redirect decision is only
// made after session resolution completes; anonymous visitors are sent to
// the login page, authenticated ones get the session attached and the full
// shell rendered. No per-role checks happen here.
func (s *Server) guardMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.resolveSession(c)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to resolve session")
			c.HTML(http.StatusInternalServerError, "error.html", gin.H{
				"Message": "Something went wrong",
			})
			c.Abort()
			return
		}

		if sess.State() != session.Authenticated {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		setSession(c, sess)
		c.Next()
	}
}

// roleHome is where a user lands right after login. This is the only place
// the role influences routing.
func roleHome(role string) string {
	if role == api.RoleSuperAdmin {
		return "/admin/restaurants"
	}
	return "/admin"
}
