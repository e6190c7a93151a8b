package schema

import (
	"dinehub/internal/core/domain/user"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPasswordResetLinkMessage(t *testing.T) {
	u := user.User{ID: 3, Username: "alice", Email: "alice@test.test", PasswordHash: "hash"}
	link := user.PasswordResetLink{UserID: "Mw", Token: "token"}

	message := NewPasswordResetLink(u, link)
	data, err := message.Marshal()
	require.NoError(t, err)
	require.NotContains(t, string(data), "hash")

	decoded := &PasswordResetLink{}
	require.NoError(t, decoded.Unmarshal(data))
	require.Equal(t, link, decoded.Link())
	require.Equal(t, user.User{ID: 3, Username: "alice", Email: "alice@test.test"}, decoded.User())
}
