package bearer_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/solvera/go-bearer"
)

func newLoginController(t *testing.T) (*bearer.AuthController, *bearer.Auther, *bearer.MemoryStore) {
	t.Helper()

	store := bearer.NewMemoryStore()
	_, err := store.Register(context.Background(), "validUser", "validPassword")
	require.NoError(t, err)

	cfg := newMockConfig()
	auther := bearer.NewAuthenticator(bearer.NewUserProvider(store), cfg)

	httpAuth, err := bearer.NewHTTPAuthenticator(auther, cfg)
	require.NoError(t, err)

	controller := bearer.NewAuthController(
		bearer.WithAuthenticator(httpAuth),
		bearer.WithUserStore(store),
	)

	return controller, auther, store
}

func bindLogin(ctx *router.MockContext, username, password string) {
	ctx.On("Bind", mock.AnythingOfType("*bearer.LoginRequest")).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*bearer.LoginRequest)
		payload.Username = username
		payload.Password = password
	}).Return(nil)
}

func TestLoginPostSuccess(t *testing.T) {
	controller, auther, _ := newLoginController(t)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	bindLogin(ctx, "validUser", "validPassword")

	var payload map[string]string
	ctx.On("JSON", router.StatusOK, mock.Anything).Run(func(args mock.Arguments) {
		payload = args.Get(1).(map[string]string)
	}).Return(nil)

	err := controller.LoginPost(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, payload["token"])

	// the issued token must verify against the same authenticator
	claims, err := auther.ClaimsFromToken(payload["token"])
	require.NoError(t, err)
	assert.Equal(t, "validUser", claims.Username())
}

func TestLoginPostMissingFields(t *testing.T) {
	controller, _, _ := newLoginController(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{name: "both missing", username: "", password: ""},
		{name: "missing password", username: "validUser", password: ""},
		{name: "missing username", username: "", password: "validPassword"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := router.NewMockContext()
			bindLogin(ctx, tt.username, tt.password)
			ctx.On("JSON", router.StatusBadRequest, map[string]string{
				"message": bearer.MsgCredentialsRequired,
			}).Return(nil)

			err := controller.LoginPost(ctx)
			require.NoError(t, err)
			ctx.AssertExpectations(t)
		})
	}
}

func TestLoginPostMalformedBody(t *testing.T) {
	controller, _, _ := newLoginController(t)

	ctx := router.NewMockContext()
	ctx.On("Bind", mock.Anything).Return(goerrors.New("unexpected end of JSON input", goerrors.CategoryBadInput))
	ctx.On("JSON", router.StatusBadRequest, map[string]string{
		"message": bearer.MsgCredentialsRequired,
	}).Return(nil)

	err := controller.LoginPost(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
}

// Rejections for an unknown username and a wrong password must be identical so
// the response gives away nothing about which part was wrong.
func TestLoginPostRejectionsIndistinguishable(t *testing.T) {
	controller, _, _ := newLoginController(t)

	attempt := func(username, password string) (int, map[string]string) {
		ctx := router.NewMockContext()
		ctx.On("Context").Return(context.Background())
		bindLogin(ctx, username, password)

		var status int
		var payload map[string]string
		ctx.On("JSON", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			status = args.Get(0).(int)
			payload = args.Get(1).(map[string]string)
		}).Return(nil)

		err := controller.LoginPost(ctx)
		require.NoError(t, err)
		return status, payload
	}

	unknownStatus, unknownBody := attempt("nosuchuser", "validPassword")
	wrongPassStatus, wrongPassBody := attempt("validUser", "wrongPassword")

	assert.Equal(t, router.StatusUnauthorized, unknownStatus)
	assert.Equal(t, router.StatusUnauthorized, wrongPassStatus)
	assert.Equal(t, map[string]string{"message": bearer.MsgInvalidCredentials}, unknownBody)
	assert.Equal(t, unknownBody, wrongPassBody)
}

func TestLoginPostInternalError(t *testing.T) {
	provider := new(MockIdentityProvider)
	provider.On("VerifyIdentity", mock.Anything, "validUser", "validPassword").
		Return(nil, goerrors.New("credential backend unavailable", goerrors.CategoryInternal))

	cfg := newMockConfig()
	auther := bearer.NewAuthenticator(provider, cfg)
	httpAuth, err := bearer.NewHTTPAuthenticator(auther, cfg)
	require.NoError(t, err)

	controller := bearer.NewAuthController(
		bearer.WithAuthenticator(httpAuth),
		bearer.WithUserStore(bearer.NewMemoryStore()),
	)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	bindLogin(ctx, "validUser", "validPassword")
	ctx.On("JSON", router.StatusInternalServerError, map[string]string{
		"message": bearer.MsgInternalError,
	}).Return(nil)

	err = controller.LoginPost(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
	provider.AssertExpectations(t)
}

func TestProtectedShow(t *testing.T) {
	controller, auther, _ := newLoginController(t)

	token, err := auther.Login(context.Background(), "validUser", "validPassword")
	require.NoError(t, err)

	claims, err := auther.ClaimsFromToken(token)
	require.NoError(t, err)

	ctx := router.NewMockContext()
	ctx.LocalsMock["user"] = claims
	ctx.On("JSON", router.StatusOK, map[string]any{
		"message": "This is a protected route",
		"user": map[string]string{
			"username": "validUser",
		},
	}).Return(nil)

	err = controller.ProtectedShow(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestProtectedShowWithoutClaims(t *testing.T) {
	controller, _, _ := newLoginController(t)

	ctx := router.NewMockContext()
	ctx.On("JSON", router.StatusUnauthorized, mock.Anything).Return(nil)

	err := controller.ProtectedShow(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
}

func TestUsersIndex(t *testing.T) {
	controller, _, store := newLoginController(t)

	_, err := store.Register(context.Background(), "anotherUser", "anotherPassword")
	require.NoError(t, err)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	ctx.On("JSON", router.StatusOK, map[string]any{
		"users": []string{"anotherUser", "validUser"},
	}).Return(nil)

	err = controller.UsersIndex(ctx)
	require.NoError(t, err)
	ctx.AssertExpectations(t)
}
