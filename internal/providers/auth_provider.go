package providers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"csd/internal/structures"

	json "github.com/goccy/go-json"
)

type AuthProviderInterface interface {
	Check(username, password string) bool
	Middleware(next http.Handler) http.Handler
}

// AuthProvider checks admin credentials against the account file, a flat
// JSON object of username to password. The file is re-read on every check
// so edits apply without a restart.
type AuthProvider struct {
	path   string
	logger Logger
}

func NewAuthProvider(conf *structures.Config, logger Logger) AuthProviderInterface {
	return &AuthProvider{path: conf.Accounts.FilePath, logger: logger}
}

func (a *AuthProvider) accounts() (map[string]string, error) {
	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, err
	}
	accounts := make(map[string]string)
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (a *AuthProvider) Check(username, password string) bool {
	accounts, err := a.accounts()
	if err != nil {
		a.logger.Warnf(TypeApp, "failed to log in user %s: account file unavailable: %s", username, err)
		return false
	}
	if len(accounts) == 0 {
		a.logger.Warnf(TypeApp, "failed to log in user %s: account file is empty", username)
		return false
	}
	expected, ok := accounts[username]
	if !ok || subtle.ConstantTimeCompare([]byte(expected), []byte(password)) != 1 {
		a.logger.Infof(TypeApp, "failed to log in user %s", username)
		return false
	}
	return true
}

func (a *AuthProvider) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok || !a.Check(username, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="csd admin"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
