package session

import (
	"dinehub/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionTokensAreUnique(t *testing.T) {
	generator := NewUUID()
	tokens := make(map[user.SessionToken]struct{})
	for i := 0; i < 100; i++ {
		token := generator.GenerateToken()
		require.NotEmpty(t, string(token))
		require.NotContains(t, tokens, token)
		tokens[token] = struct{}{}
	}
}
