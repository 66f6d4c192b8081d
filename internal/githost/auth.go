package githost

import (
	"context"
	"fmt"
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/qiniu/x/log"
	"golang.org/x/oauth2"

	"github.com/siddharthkul/voyager-gha/internal/config"
)

// newHTTPClient builds the authenticated transport shared by the REST and
// GraphQL clients. GitHub App credentials win over a personal token when both
// are configured.
func newHTTPClient(cfg config.GitHubConfig) (*http.Client, error) {
	if cfg.AppID != 0 && cfg.InstallationID != 0 && cfg.PrivateKeyPath != "" {
		itr, err := ghinstallation.NewKeyFromFile(
			http.DefaultTransport, cfg.AppID, cfg.InstallationID, cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create app installation transport: %w", err)
		}
		log.Infof("Authenticating as GitHub App %d (installation %d)", cfg.AppID, cfg.InstallationID)
		return &http.Client{Transport: itr}, nil
	}

	if cfg.Token == "" {
		return nil, fmt.Errorf("GitHub token or app credentials are required")
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	return oauth2.NewClient(context.Background(), ts), nil
}
