package usecase

import (
	"context"
	"regexp"
	"time"

	"github.com/vobe/voicedesk/application/port/inbound"
	"github.com/vobe/voicedesk/application/port/outbound"
	"github.com/vobe/voicedesk/domain/apperror"
	"github.com/vobe/voicedesk/infrastructure/service/logger"
	"github.com/vobe/voicedesk/infrastructure/telephony"
)

// phonePattern decides whether an outbound target is a dialable number or a
// software-client name. Allowed characters: digits, +, -, parentheses, space.
var phonePattern = regexp.MustCompile(`^[\d\+\-\(\) ]+$`)

type VoiceUseCase struct {
	grantIssuer        outbound.GrantTokenIssuer
	identityStore      outbound.IdentityStore
	logger             logger.Logger
	callerID           string
	pendingIdentityTTL time.Duration
}

type VoiceConfig struct {
	CallerID           string
	PendingIdentityTTL time.Duration
}

func NewVoiceUseCase(
	grantIssuer outbound.GrantTokenIssuer,
	identityStore outbound.IdentityStore,
	log logger.Logger,
	cfg VoiceConfig,
) inbound.VoiceUseCase {
	return &VoiceUseCase{
		grantIssuer:        grantIssuer,
		identityStore:      identityStore,
		logger:             log,
		callerID:           cfg.CallerID,
		pendingIdentityTTL: cfg.PendingIdentityTTL,
	}
}

// IssueToken signs a grant token for the requested identity and registers it
// as the routable target for calls to the service's public number. The
// caller has already been authenticated; an empty identity falls back to the
// verified account email.
func (uc *VoiceUseCase) IssueToken(ctx context.Context, req inbound.VoiceTokenRequest) (*inbound.VoiceTokenResponse, error) {
	identity := req.Identity
	if identity == "" {
		identity = req.CallerEmail
	}
	if identity == "" {
		return nil, apperror.ErrUnauthenticated()
	}

	token, err := uc.grantIssuer.IssueGrantToken(identity)
	if err != nil {
		uc.logger.Error(ctx, "failed to issue grant token", err, map[string]interface{}{
			"identity": identity,
		})
		return nil, apperror.ErrInternal(err)
	}

	if err := uc.identityStore.SetPendingIdentity(ctx, identity, uc.pendingIdentityTTL); err != nil {
		uc.logger.Error(ctx, "failed to register pending identity", err, map[string]interface{}{
			"identity": identity,
		})
		return nil, apperror.ErrInternal(err)
	}

	uc.logger.Info(ctx, "voice token issued", map[string]interface{}{
		"identity": identity,
	})

	return &inbound.VoiceTokenResponse{
		Identity: identity,
		Token:    token,
	}, nil
}

// RouteCall classifies a provider webhook into one of three routing
// documents, checked in order:
//
//  1. call to our public number  -> dial the registered client identity
//  2. outbound call with a target -> dial a number or a peer client
//  3. no routable target          -> speak a greeting and hang up
//
// Malformed payloads never fail loudly; they fall through to the greeting.
func (uc *VoiceUseCase) RouteCall(ctx context.Context, req inbound.CallRequest) (string, error) {
	var doc *telephony.VoiceResponse

	switch {
	case req.To != "" && req.To == uc.callerID:
		identity, err := uc.identityStore.PendingIdentity(ctx)
		if err != nil {
			uc.logger.Error(ctx, "failed to read pending identity", err, nil)
		}
		uc.logger.Info(ctx, "routing inbound call to client", map[string]interface{}{
			"identity": identity,
		})
		doc = telephony.DialClient(identity, "")

	case req.Phone != "":
		if phonePattern.MatchString(req.Phone) {
			uc.logger.Info(ctx, "routing outbound call to number", map[string]interface{}{
				"number": req.Phone,
			})
			doc = telephony.DialNumber(req.Phone, uc.callerID)
		} else {
			uc.logger.Info(ctx, "routing outbound call to client", map[string]interface{}{
				"client": req.Phone,
			})
			doc = telephony.DialClient(req.Phone, uc.callerID)
		}

	default:
		uc.logger.Info(ctx, "no routable target, greeting caller", nil)
		doc = telephony.SayMessage("Thanks for calling!")
	}

	out, err := doc.String()
	if err != nil {
		return "", apperror.ErrInternal(err)
	}
	return out, nil
}
