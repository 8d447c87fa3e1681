package inbound

import (
	"context"
)

type VoiceTokenRequest struct {
	// Identity the grant token is issued for. When empty the verified
	// caller's email is used instead.
	Identity string `json:"identity"`
	// CallerEmail is resolved by the auth middleware, never client-supplied.
	CallerEmail string `json:"-"`
}

type VoiceTokenResponse struct {
	Identity string `json:"identity"`
	Token    string `json:"token"`
}

// CallRequest carries the provider webhook form fields that drive routing.
type CallRequest struct {
	To    string
	Phone string
}

type VoiceUseCase interface {
	IssueToken(ctx context.Context, req VoiceTokenRequest) (*VoiceTokenResponse, error)
	RouteCall(ctx context.Context, req CallRequest) (string, error)
}
