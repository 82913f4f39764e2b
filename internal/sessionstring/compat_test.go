package sessionstring

import (
	"testing"

	"github.com/gotd/td/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_AgreesWithGotd(t *testing.T) {
	str, err := Encode(Session{DC: 4, Addr: "149.154.167.91:443", AuthKey: sequentialKey()})
	require.NoError(t, err)

	for _, in := range []string{telethonSession, str} {
		ours, err := Decode(in)
		require.NoError(t, err)

		theirs, err := session.TelethonSession(in)
		require.NoError(t, err)

		assert.Equal(t, theirs.DC, ours.DC)
		assert.Equal(t, theirs.Addr, ours.Addr)
		assert.Equal(t, theirs.AuthKey, ours.AuthKey)
		assert.Equal(t, theirs.AuthKeyID, ours.AuthKeyID())
	}
}
