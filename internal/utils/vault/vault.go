package vault

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/utils/config"
)

const kubernetesTokenPath = "/var/run/secrets/kubernetes.io/serviceaccount/token"

// VaultClient reads the facilitator signer key from Vault
type VaultClient struct {
	client       *resty.Client
	kvSecretPath string
	transitKey   string
	role         string
	tokenPath    string
}

type vaultErrors struct {
	Errors []string `json:"errors"`
}

type loginResponse struct {
	Auth *struct {
		ClientToken string `json:"client_token"`
	} `json:"auth"`
}

type kvResponse struct {
	Data *struct {
		Data map[string]interface{} `json:"data"`
	} `json:"data"`
}

type decryptResponse struct {
	Data *struct {
		Plaintext string `json:"plaintext"`
	} `json:"data"`
}

// New creates a Vault client. A static token is used when configured,
// otherwise the client logs in with the pod's Kubernetes service account.
func New(cfg config.VaultConfig) (*VaultClient, error) {
	return newClient(cfg, kubernetesTokenPath)
}

func newClient(cfg config.VaultConfig, tokenPath string) (*VaultClient, error) {
	if cfg.Address == "" {
		return nil, errors.New("vault address is not configured")
	}
	vc := &VaultClient{
		client:       resty.New().SetBaseURL(cfg.Address),
		kvSecretPath: cfg.Path,
		transitKey:   cfg.TransitKey,
		role:         cfg.Role,
		tokenPath:    tokenPath,
	}

	token := cfg.Token
	if token == "" {
		var err error
		token, err = vc.login()
		if err != nil {
			return nil, err
		}
	}
	vc.client.SetHeader("X-Vault-Token", token)
	return vc, nil
}

// GetKubernetesToken reads the Kubernetes service account token
func (vc *VaultClient) GetKubernetesToken() (string, error) {
	token, err := os.ReadFile(vc.tokenPath)
	if err != nil {
		return "", fmt.Errorf("failed to read token: %v", err)
	}
	return string(token), nil
}

// login performs login to Vault using Kubernetes authentication
func (vc *VaultClient) login() (string, error) {
	k8sToken, err := vc.GetKubernetesToken()
	if err != nil {
		return "", err
	}

	var result loginResponse
	resp, err := vc.client.R().
		SetBody(map[string]string{
			"jwt":  k8sToken,
			"role": vc.role,
		}).
		SetResult(&result).
		SetError(&vaultErrors{}).
		Post("/v1/auth/kubernetes/login")
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("vault authentication failed with status %d: %v", resp.StatusCode(), resp.Error())
	}
	if result.Auth == nil || result.Auth.ClientToken == "" {
		return "", fmt.Errorf("vault returned empty client_token")
	}
	return result.Auth.ClientToken, nil
}

// GetKV retrieves a secret from Vault's Key-Value store (KV v2). When a transit
// key is configured the stored value is ciphertext and is decrypted first.
func (vc *VaultClient) GetKV(secretKey string) (string, error) {
	var result kvResponse
	resp, err := vc.client.R().
		SetResult(&result).
		SetError(&vaultErrors{}).
		Get("/v1/" + vc.kvSecretPath)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("vault KV get failed with status %d: %v", resp.StatusCode(), resp.Error())
	}
	if result.Data == nil || result.Data.Data == nil {
		return "", fmt.Errorf("vault response missing nested 'data' field")
	}

	secretInterface, exists := result.Data.Data[secretKey]
	if !exists {
		return "", fmt.Errorf("secret key '%s' not found", secretKey)
	}
	secret, ok := secretInterface.(string)
	if !ok {
		return "", fmt.Errorf("secret value for key '%s' is not a string", secretKey)
	}

	if vc.transitKey == "" {
		return secret, nil
	}
	return vc.DecryptData(vc.transitKey, secret)
}

// DecryptData decrypts data using Vault's transit engine
func (vc *VaultClient) DecryptData(transitKey, ciphertext string) (string, error) {
	var result decryptResponse
	resp, err := vc.client.R().
		SetBody(map[string]string{"ciphertext": ciphertext}).
		SetResult(&result).
		SetError(&vaultErrors{}).
		Post("/v1/transit/decrypt/" + transitKey)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		return "", fmt.Errorf("vault decrypt failed with status %d: %v", resp.StatusCode(), resp.Error())
	}
	if result.Data == nil {
		return "", fmt.Errorf("vault response missing 'data' field")
	}

	plaintext, err := base64.StdEncoding.DecodeString(result.Data.Plaintext)
	if err != nil {
		return "", fmt.Errorf("failed to decode base64 plaintext: %v", err)
	}
	return string(plaintext), nil
}
