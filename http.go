package bearer

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/solvera/go-bearer/middleware/bearerware"
)

// Middleware holds the route-protection surface of the HTTP authenticator
type Middleware interface {
	ProtectedRoute(cfg Config, errorHandler router.ErrorHandler) router.MiddlewareFunc
}

// HTTPAuthenticator combines login handling with route protection
type HTTPAuthenticator interface {
	Middleware
	Login(c router.Context, username, password string) (string, error)
}

// RouteAuthenticator wires an Authenticator into router middleware and
// translates verification failures into the fixed rejection responses.
type RouteAuthenticator struct {
	auth         Authenticator
	cfg          Config
	Logger       Logger
	ErrorHandler router.ErrorHandler
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*RouteAuthenticator, error) {
	if auther == nil {
		return nil, errors.New("authenticator is required", errors.CategoryBadInput)
	}

	a := &RouteAuthenticator{
		cfg:    cfg,
		auth:   auther,
		Logger: defLogger{},
	}

	a.ErrorHandler = a.defaultErrHandler

	return a, nil
}

var _ HTTPAuthenticator = (*RouteAuthenticator)(nil)

// ProtectedRoute builds the token-verification middleware for this deployment.
// Verification runs against the authenticator's validator so externally issued
// tokens keep working when a custom TokenValidator was configured.
func (a *RouteAuthenticator) ProtectedRoute(cfg Config, errorHandler router.ErrorHandler) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = a.ErrorHandler
	}

	return bearerware.New(bearerware.Config{
		ErrorHandler: errorHandler,
		SigningKey: bearerware.SigningKey{
			Key:    []byte(cfg.GetSigningKey()),
			JWTAlg: cfg.GetSigningMethod(),
		},
		AuthScheme:      cfg.GetAuthScheme(),
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		TokenValidator:  validatorAdapter{auth: a.auth},
		ContextEnricher: ContextEnricherAdapter,
		Logger:          a.Logger.Warn,
	})
}

// Login authenticates the pair and returns the issued token
func (a *RouteAuthenticator) Login(ctx router.Context, username, password string) (string, error) {
	token, err := a.auth.Login(ctx.Context(), username, password)
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return "", err
	}
	return token, nil
}

// defaultErrHandler implements the rejection contract: extraction failures are
// 401, everything else (bad signature, malformed, expired) is 403. The cause
// distinction is logged but never surfaced to the client.
func (a *RouteAuthenticator) defaultErrHandler(c router.Context, err error) error {
	if errors.Is(err, bearerware.ErrTokenRequired) {
		return c.JSON(router.StatusUnauthorized, map[string]string{
			"message": bearerware.MsgTokenRequired,
		})
	}

	if IsTokenExpiredError(err) {
		a.Logger.Info("token rejected: expired", "path", c.OriginalURL())
	} else {
		a.Logger.Info("token rejected: invalid", "path", c.OriginalURL(), "error", err)
	}

	return c.JSON(router.StatusForbidden, map[string]string{
		"message": bearerware.MsgTokenInvalid,
	})
}

// validatorAdapter bridges the bearer and bearerware claim interfaces, which
// mirror each other to avoid an import cycle.
type validatorAdapter struct {
	auth Authenticator
}

func (v validatorAdapter) Validate(tokenString string) (bearerware.AuthClaims, error) {
	claims, err := v.auth.ClaimsFromToken(tokenString)
	if err != nil {
		return nil, err
	}

	mirrored, ok := claims.(bearerware.AuthClaims)
	if !ok {
		return nil, ErrUnableToMapClaims
	}

	return mirrored, nil
}

// ContextEnricherAdapter adapts bearerware.AuthClaims to bearer.AuthClaims and
// stores claims in the standard context for downstream usage.
func ContextEnricherAdapter(c context.Context, claims bearerware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}

	return WithClaimsContext(c, authClaims)
}
