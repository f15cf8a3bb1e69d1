package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

const deleteEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:delete"

// GoogleProvider verifies Google ID tokens and deletes accounts through
// the Identity Toolkit REST API.
type GoogleProvider struct {
	clientIDs []string
	apiKey    string
	http      *http.Client
}

// NewGoogleProvider creates a GoogleProvider. clientIDs are the accepted
// token audiences; apiKey may be empty, which disables remote deletion.
func NewGoogleProvider(clientIDs []string, apiKey string) *GoogleProvider {
	return &GoogleProvider{
		clientIDs: clientIDs,
		apiKey:    apiKey,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken validates the signature and audience of a Google ID token
// and decodes its profile claims.
func (p *GoogleProvider) VerifyToken(_ context.Context, idToken string) (*Account, error) {
	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, p.clientIDs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidToken, err)
	}

	return &Account{
		Email:    claims.Email,
		Name:     claims.Name,
		PhotoURL: claims.Picture,
	}, nil
}

// DeleteAccount removes the provider-side account. With no API key
// configured this is a no-op so local-only deployments still work.
func (p *GoogleProvider) DeleteAccount(ctx context.Context, email string) error {
	if p.apiKey == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("marshal delete request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, deleteEndpoint+"?key="+p.apiKey, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build delete request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("identity provider delete returned %d", resp.StatusCode)
	}
	return nil
}
