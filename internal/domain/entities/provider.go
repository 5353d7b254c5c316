package entities

// ProviderIdentity is the profile extracted from a verified external-provider
// assertion (Google ID token or Facebook access token). Subject is the
// provider's stable user identifier and plays the role of the password for
// provider-backed accounts.
type ProviderIdentity struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
}
