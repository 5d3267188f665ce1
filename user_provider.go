package bearer

import (
	"context"

	"github.com/goliatone/go-errors"
)

// UserProvider verifies identities against a UserStore
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

var _ IdentityProvider = (*UserProvider)(nil)

// VerifyIdentity will find the user, compare the password, and return the
// identity. Unknown usernames and wrong passwords both come back as
// ErrInvalidCredentials so the caller cannot tell which check failed.
func (u *UserProvider) VerifyIdentity(ctx context.Context, username, password string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		// malformed stored hash or a hashing engine failure, not a bad password
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to compare password hash")
	}

	return authIdentity{
		id:       user.Username,
		username: user.Username,
	}, nil
}

// FindIdentityByUsername retrieves an identity without checking a password
func (u *UserProvider) FindIdentityByUsername(ctx context.Context, username string) (Identity, error) {
	user, err := u.store.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	return authIdentity{
		id:       user.Username,
		username: user.Username,
	}, nil
}

type authIdentity struct {
	id       string
	username string
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) Username() string {
	return a.username
}

var _ Identity = authIdentity{}
