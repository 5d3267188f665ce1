package bearer_test

import (
	"testing"
	"time"

	"github.com/solvera/go-bearer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "Valid password",
			password: "securePassword123!",
			wantErr:  false,
		},
		{
			name:     "Empty password",
			password: "",
			wantErr:  true, // bcrypt can hash empty strings!
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := bearer.HashPassword(tt.password)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			err = bearer.ComparePasswordAndHash(tt.password, hash)
			assert.NoError(t, err)
		})
	}
}

func TestComparePasswordAndHash(t *testing.T) {
	password := "testPassword123!"
	hash, err := bearer.HashPassword(password)
	assert.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  bool
	}{
		{
			name:     "Matching password",
			password: password,
			hash:     hash,
			wantErr:  false,
		},
		{
			name:     "Wrong password",
			password: "wrongPassword",
			hash:     hash,
			wantErr:  true,
		},
		{
			name:     "Invalid hash",
			password: password,
			hash:     "invalidhash",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bearer.ComparePasswordAndHash(tt.password, tt.hash)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.hash == hash {
					assert.Equal(t, bearer.ErrMismatchedHashAndPassword, err)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashPasswordAsync(t *testing.T) {
	t.Run("delivers hash on completion", func(t *testing.T) {
		var result bearer.HashResult
		select {
		case result = <-bearer.HashPasswordAsync("asyncPassword!"):
		case <-time.After(30 * time.Second):
			t.Fatal("timed out waiting for async hash")
		}

		require.NoError(t, result.Err)
		require.NotEmpty(t, result.Hash)
		assert.NoError(t, bearer.ComparePasswordAndHash("asyncPassword!", result.Hash))
	})

	t.Run("delivers error for empty password", func(t *testing.T) {
		result := <-bearer.HashPasswordAsync("")
		assert.Error(t, result.Err)
		assert.Empty(t, result.Hash)
	})
}

func TestRandomPasswordHash(t *testing.T) {
	hash1 := bearer.RandomPasswordHash()
	hash2 := bearer.RandomPasswordHash()

	assert.NotEmpty(t, hash1)
	assert.NotEmpty(t, hash2)
	assert.NotEqual(t, hash1, hash2)
}
