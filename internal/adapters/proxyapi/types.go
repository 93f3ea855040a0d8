package proxyapi

// Wire-level request and response shapes for the registration proxy.
// Optional fields are pointers so "absent" and "empty" stay distinct
// on the wire.

type registerRequest struct {
	Captcha         *string `json:"captcha,omitempty"`
	UseVoice        bool    `json:"use_voice"`
	OwnershipSecret *string `json:"ownership_secret,omitempty"`
	Model           *string `json:"model,omitempty"`
	SystemPrompt    *string `json:"system_prompt,omitempty"`
}

type registerResponse struct {
	PhoneNumber string `json:"phone_number"`
	Status      string `json:"status"`
	Message     string `json:"message"`
}

type verifyRequest struct {
	Pin             *string `json:"pin,omitempty"`
	OwnershipSecret *string `json:"ownership_secret,omitempty"`
}

type updateProfileRequest struct {
	Name            *string `json:"name,omitempty"`
	About           *string `json:"about,omitempty"`
	OwnershipSecret *string `json:"ownership_secret,omitempty"`
}

type setUsernameRequest struct {
	Username        string  `json:"username"`
	OwnershipSecret *string `json:"ownership_secret,omitempty"`
}

type usernameResponse struct {
	PhoneNumber  string  `json:"phone_number"`
	Username     *string `json:"username"`
	UsernameLink *string `json:"username_link"`
	Message      string  `json:"message"`
}

type ownershipRequest struct {
	OwnershipSecret *string `json:"ownership_secret,omitempty"`
}

type statusResponse struct {
	PhoneNumber  string  `json:"phone_number"`
	Status       string  `json:"status"`
	RegisteredAt *string `json:"registered_at"`
}

type botInfo struct {
	Username     string  `json:"username"`
	PhoneNumber  string  `json:"phone_number"`
	SignalLink   string  `json:"signal_link"`
	RegisteredAt string  `json:"registered_at"`
	IdentityKey  *string `json:"identity_key,omitempty"`
	Model        *string `json:"model,omitempty"`
	Description  *string `json:"description,omitempty"`
	SystemPrompt *string `json:"system_prompt,omitempty"`
}

type botsResponse struct {
	Bots  []botInfo `json:"bots"`
	Total int       `json:"total"`
}

type healthResponse struct {
	Status           string `json:"status"`
	RegistryCount    int    `json:"registry_count"`
	SignalAPIHealthy bool   `json:"signal_api_healthy"`
}

type attestationResponse struct {
	InTEE           bool    `json:"in_tee"`
	ComposeHash     *string `json:"compose_hash,omitempty"`
	AppID           *string `json:"app_id,omitempty"`
	TDXQuoteBase64  *string `json:"tdx_quote_base64,omitempty"`
	VerificationURL *string `json:"verification_url,omitempty"`
}

// errorResponse is the proxy's uniform error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
