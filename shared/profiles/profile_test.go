package profiles_test

import (
	"encoding/json"
	"testing"

	"github.com/dracory/spacebase/shared/profiles"
	"github.com/dracory/spacebase/shared/stdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_StdbConfig(t *testing.T) {
	tests := []struct {
		name string
		p    profiles.Profile
		want stdb.Config
	}{
		{
			name: "url mode ignores host",
			p:    profiles.Profile{Mode: profiles.ModeURL, URL: "https://x", Host: "h", Port: 1, Database: "d"},
			want: stdb.Config{URL: "https://x", Database: "d"},
		},
		{
			name: "host-port mode ignores url",
			p:    profiles.Profile{Mode: profiles.ModeHostPort, URL: "https://x", Host: "h", Port: 1, Token: "t"},
			want: stdb.Config{Host: "h", Port: 1, Token: "t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.StdbConfig())
		})
	}
}

func TestFromConfig(t *testing.T) {
	p := profiles.FromConfig("", stdb.Config{Host: "localhost", Port: 3000, Database: "game"})
	assert.Equal(t, profiles.ModeHostPort, p.Mode)
	assert.Equal(t, "localhost:3000/game", p.Name)

	p = profiles.FromConfig(" prod ", stdb.Config{URL: "https://stdb.example.com", Token: "t"})
	assert.Equal(t, profiles.ModeURL, p.Mode)
	assert.Equal(t, "prod", p.Name)
	assert.True(t, p.HasToken())
}

func TestProfile_JSONHidesToken(t *testing.T) {
	b, err := json.Marshal(profiles.Profile{ID: "1", Name: "x", Mode: profiles.ModeURL, URL: "http://x", Token: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
}

func TestCipher_RoundTrip(t *testing.T) {
	c := profiles.NewCipher("k")

	enc, err := c.Encrypt("token-value")
	require.NoError(t, err)
	assert.NotEqual(t, "token-value", enc)

	dec, err := c.Decrypt(enc)
	require.NoError(t, err)
	assert.Equal(t, "token-value", dec)

	empty, err := c.Encrypt("")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = c.Decrypt("not base64!")
	assert.Error(t, err)
}

func TestProfile_Summary(t *testing.T) {
	s := profiles.Profile{ID: "1", Name: "x", Mode: profiles.ModeURL, URL: "http://x", Token: "secret"}.Summary()
	assert.True(t, s.HasToken)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.Contains(t, string(b), `"has_token":true`)
}
