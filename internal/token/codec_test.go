package token

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{
	ID:     42,
	Email:  "nadia@lumiere.test",
	Name:   "Nadia Laurent",
	Role:   "Instructor",
	Avatar: "https://cdn.lumiere.test/avatars/42.png",
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", 0)

	raw, err := codec.Issue(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got := codec.Verify(raw)
	require.NotNil(t, got)
	assert.Equal(t, testIdentity, *got)
}

func TestVerifyExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	codec := NewCodec("test-secret", 0).WithClock(fixedClock(issuedAt))

	raw, err := codec.Issue(testIdentity)
	require.NoError(t, err)

	cases := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"at issuance", issuedAt, true},
		{"midway", issuedAt.Add(3 * 24 * time.Hour), true},
		{"one second before expiry", issuedAt.Add(Lifetime - time.Second), true},
		{"exactly at expiry", issuedAt.Add(Lifetime), false},
		{"after expiry", issuedAt.Add(Lifetime + time.Hour), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			codec.WithClock(fixedClock(tc.at))
			got := codec.Verify(raw)
			if tc.valid {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestVerifyRejectsTamperedClaims(t *testing.T) {
	codec := NewCodec("test-secret", 0)
	raw, err := codec.Issue(testIdentity)
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))
	claims["role"] = "Admin"
	forged, err := json.Marshal(claims)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	assert.Nil(t, codec.Verify(strings.Join(parts, ".")))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	raw, err := NewCodec("secret-a", 0).Issue(testIdentity)
	require.NoError(t, err)
	assert.Nil(t, NewCodec("secret-b", 0).Verify(raw))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	codec := NewCodec("test-secret", 0)
	for _, raw := range []string{"", "not-a-token", "a.b.c", base64.StdEncoding.EncodeToString([]byte(`{"id":1}`))} {
		assert.Nil(t, codec.Verify(raw), "token %q", raw)
	}
}

func TestFromRequest(t *testing.T) {
	codec := NewCodec("test-secret", 0)
	raw, err := codec.Issue(testIdentity)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		want   string
	}{
		{"well formed", "Bearer " + raw, raw},
		{"lowercase scheme", "bearer " + raw, raw},
		{"missing header", "", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", ""},
		{"bare scheme", "Bearer", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			assert.Equal(t, tc.want, FromRequest(r))
		})
	}
}
