package bearer

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// Client-facing response messages. The invalid-credentials body is shared by
// unknown-username and wrong-password outcomes so responses stay
// byte-identical and leak nothing about which field was wrong.
const (
	MsgCredentialsRequired = "Username and password are required"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgInternalError       = "Internal server error"
)

type AuthControllerRoutes struct {
	Login     string
	Protected string
	Users     string
}

type AuthController struct {
	Debug        bool
	Logger       Logger
	Auther       HTTPAuthenticator
	Store        UserStore
	Routes       *AuthControllerRoutes
	ContextKey   string
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithAuthenticator(auther HTTPAuthenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithUserStore(store UserStore) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Store = store
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Login:     "/api/auth/login",
			Protected: "/api/protected",
			Users:     "/api/users",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing HTTPAuthenticator in auth controller...")
	}

	if c.Store == nil {
		panic("Missing UserStore in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the login endpoint, a protected sample route, and
// the read-only user listing.
func RegisterAuthRoutes[T any](app router.Router[T], controller *AuthController, cfg Config) {
	protected := controller.Auther.ProtectedRoute(cfg, nil)

	if controller.ContextKey == "" {
		controller.ContextKey = cfg.GetContextKey()
	}

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login.post")

	app.Get(controller.Routes.Protected, controller.ProtectedShow, protected).
		SetName("auth.protected.get")

	app.Get(controller.Routes.Users, controller.UsersIndex).
		SetName("users.index.get")
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginPost handles POST /api/auth/login. Every outcome maps to a fixed
// response shape; internal causes go to the operator log only.
func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"message": MsgCredentialsRequired,
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, map[string]string{
			"message": MsgCredentialsRequired,
		})
	}

	if a.Debug {
		// the password never goes near a log line
		a.Logger.Debug("login attempt %s", print.MaybePrettyJSON(map[string]any{
			"username": payload.Username,
		}))
	}

	token, err := a.Auther.Login(ctx, payload.Username, payload.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryAuth {
			return ctx.JSON(router.StatusUnauthorized, map[string]string{
				"message": MsgInvalidCredentials,
			})
		}

		a.Logger.Error("login internal failure",
			"username", payload.Username,
			"error", err,
		)
		return ctx.JSON(router.StatusInternalServerError, map[string]string{
			"message": MsgInternalError,
		})
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"token": token,
	})
}

// ProtectedShow echoes the authenticated identity back to the caller. It only
// runs behind ProtectedRoute, so claims are always present; the guard covers
// direct registration without the middleware.
func (a *AuthController) ProtectedShow(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, a.ContextKey)
	if !ok {
		return ctx.JSON(router.StatusUnauthorized, map[string]string{
			"message": "Authentication token required",
		})
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"message": "This is a protected route",
		"user": map[string]string{
			"username": claims.Username(),
		},
	})
}

// UsersIndex is a thin read-only listing of registered usernames.
func (a *AuthController) UsersIndex(ctx router.Context) error {
	users, err := a.Store.List(ctx.Context())
	if err != nil {
		a.Logger.Error("users listing failure", "error", err)
		return ctx.JSON(router.StatusInternalServerError, map[string]string{
			"message": MsgInternalError,
		})
	}

	usernames := make([]string, 0, len(users))
	for _, user := range users {
		usernames = append(usernames, user.Username)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"users": usernames,
	})
}
