package outbound

// GrantTokenIssuer signs provider access tokens carrying the voice, video
// and optional chat grants for a caller identity.
type GrantTokenIssuer interface {
	IssueGrantToken(identity string) (string, error)
}
