package recall

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsRoundTripPreservesUnknownKeys(t *testing.T) {
	raw := []byte(`{
		"id": "7b7e0ef8-3f38-4b52-b70e-dd79f3b0f0a1",
		"tenant_id": "11111111-1111-1111-1111-111111111111",
		"email": "ada@example.com",
		"name": null,
		"role": "member",
		"is_active": true,
		"created_at": "2024-06-01T12:00:00Z",
		"updated_at": "2024-06-01T12:00:00Z",
		"mfa_enrolled": true,
		"shard": "eu-west-3"
	}`)

	var identity Identity
	require.NoError(t, json.Unmarshal(raw, &identity))
	assert.True(t, identity.Name.IsNull(), "explicit null must decode as null state")
	assert.True(t, identity.LastSeenAt.IsAbsent(), "missing key must decode as absent")
	require.Contains(t, identity.Extra, "mfa_enrolled")
	require.Contains(t, identity.Extra, "shard")

	encoded, err := json.Marshal(identity)
	require.NoError(t, err)

	var decoded Identity
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, identity.ID, decoded.ID)
	assert.Equal(t, identity.Email, decoded.Email)
	assert.True(t, decoded.Name.IsNull())
	assert.True(t, decoded.LastSeenAt.IsAbsent())
	assert.JSONEq(t, `true`, string(decoded.Extra["mfa_enrolled"]))
	assert.JSONEq(t, `"eu-west-3"`, string(decoded.Extra["shard"]))
}

func TestModelsDeclaredFieldWinsOverExtra(t *testing.T) {
	memory := Memory{
		ID:        uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		TenantID:  uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Content:   "declared content",
		CreatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Extra: map[string]json.RawMessage{
			"content":   json.RawMessage(`"stale extra content"`),
			"embedding": json.RawMessage(`[0.1,0.2]`),
		},
	}

	encoded, err := json.Marshal(memory)
	require.NoError(t, err)

	var decoded Memory
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, "declared content", decoded.Content)
	assert.NotContains(t, decoded.Extra, "content")
	assert.JSONEq(t, `[0.1,0.2]`, string(decoded.Extra["embedding"]))
}

func TestModelsRoundTripTable(t *testing.T) {
	policyID := uuid.MustParse("3f8a9c1e-5d2b-4e7f-9a1c-8b6d4e2f0a3c")
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		value any
		fresh func() any
	}{
		{
			name: "policy",
			value: &Policy{
				ID:        policyID,
				TenantID:  policyID,
				Name:      "allow-reads",
				Effect:    PolicyEffectAllow,
				Actions:   []string{"memory:read"},
				Resources: []string{"memory/*"},
				Priority:  5,
				IsActive:  true,
				CreatedAt: created,
				UpdatedAt: created,
				Extra:     map[string]json.RawMessage{"origin": json.RawMessage(`"terraform"`)},
			},
			fresh: func() any { return &Policy{} },
		},
		{
			name: "webhook delivery",
			value: &WebhookDelivery{
				ID:             policyID,
				WebhookID:      policyID,
				Event:          WebhookEventMemoryCreated,
				Status:         DeliveryDelivered,
				Attempts:       1,
				ResponseStatus: Some(200),
				DeliveredAt:    Some(created),
				CreatedAt:      created,
			},
			fresh: func() any { return &WebhookDelivery{} },
		},
		{
			name: "token response",
			value: &TokenResponse{
				AccessToken:  "tok",
				TokenType:    "bearer",
				ExpiresAt:    created,
				RefreshToken: Null[string](),
				Extra:        map[string]json.RawMessage{"scope": json.RawMessage(`"full"`)},
			},
			fresh: func() any { return &TokenResponse{} },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := json.Marshal(tc.value)
			require.NoError(t, err)
			decoded := tc.fresh()
			require.NoError(t, json.Unmarshal(encoded, decoded))
			assert.Equal(t, tc.value, decoded)
		})
	}
}
