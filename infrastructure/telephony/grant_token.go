package telephony

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GrantTokenService builds the provider's access tokens: JWTs signed with
// the API secret whose payload carries a "grants" object listing what the
// holder may do. Wire format follows the provider's first-person-auth token
// contract (cty "twilio-fpa;v=1", iss = API key, sub = account SID).
type GrantTokenService struct {
	accountSID     string
	apiKey         string
	apiSecret      string
	applicationSID string
	chatServiceSID string
	ttl            time.Duration
}

func NewGrantTokenService(accountSID, apiKey, apiSecret, applicationSID, chatServiceSID string, ttl time.Duration) *GrantTokenService {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &GrantTokenService{
		accountSID:     accountSID,
		apiKey:         apiKey,
		apiSecret:      apiSecret,
		applicationSID: applicationSID,
		chatServiceSID: chatServiceSID,
		ttl:            ttl,
	}
}

// IssueGrantToken signs a token for identity with a voice grant (incoming
// allowed, outgoing routed to the configured application), a video grant and,
// when a chat service is configured, a chat grant.
func (s *GrantTokenService) IssueGrantToken(identity string) (string, error) {
	if identity == "" {
		return "", fmt.Errorf("identity cannot be empty")
	}

	grants := s.buildGrants(identity)

	now := time.Now()
	claims := jwt.MapClaims{
		"jti":    fmt.Sprintf("%s-%d", s.apiKey, now.Unix()),
		"iss":    s.apiKey,
		"sub":    s.accountSID,
		"iat":    now.Unix(),
		"exp":    now.Add(s.ttl).Unix(),
		"grants": grants,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["cty"] = "twilio-fpa;v=1"

	signed, err := token.SignedString([]byte(s.apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign grant token: %w", err)
	}
	return signed, nil
}

func (s *GrantTokenService) buildGrants(identity string) map[string]interface{} {
	grants := map[string]interface{}{
		"identity": identity,
		"voice": map[string]interface{}{
			"incoming": map[string]interface{}{
				"allow": true,
			},
			"outgoing": map[string]interface{}{
				"application_sid": s.applicationSID,
			},
		},
		"video": map[string]interface{}{},
	}
	if s.chatServiceSID != "" {
		grants["chat"] = map[string]interface{}{
			"service_sid": s.chatServiceSID,
		}
	}
	return grants
}
