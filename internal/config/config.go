package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

type Config struct {
	GitHub       GitHubConfig  `yaml:"github"`
	LLM          LLMConfig     `yaml:"llm"`
	Policy       models.Policy `yaml:"policy"`
	BranchPrefix string        `yaml:"branch_prefix"`
}

type GitHubConfig struct {
	Token      string `yaml:"token"`
	Repository string `yaml:"repository"` // "owner/name"
	EventPath  string `yaml:"event_path"`

	// GitHub App credentials, used instead of Token when all three are set.
	AppID          int64  `yaml:"app_id"`
	InstallationID int64  `yaml:"installation_id"`
	PrivateKeyPath string `yaml:"private_key_path"`
}

type LLMConfig struct {
	Provider        string `yaml:"provider"` // "claude" or "gemini"
	Model           string `yaml:"model"`
	AnthropicAPIKey string `yaml:"anthropic_api_key"`
	GoogleAPIKey    string `yaml:"google_api_key"`
	MaxTokens       int64  `yaml:"max_tokens"`
}

// Load reads the optional YAML config file, then overlays environment
// variables. With no file present the configuration comes entirely from the
// environment, which is how the Actions runner invokes the binary.
func Load(configPath string) (*Config, error) {
	config := defaults()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	config.loadFromEnv()
	return config, nil
}

func defaults() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "claude",
			MaxTokens: 8192,
		},
		Policy:       models.DefaultPolicy(),
		BranchPrefix: "voyager",
	}
}

func (c *Config) loadFromEnv() {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}
	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
		c.GitHub.Repository = repo
	}
	if path := os.Getenv("GITHUB_EVENT_PATH"); path != "" {
		c.GitHub.EventPath = path
	}
	if appID := os.Getenv("GITHUB_APP_ID"); appID != "" {
		if id, err := strconv.ParseInt(appID, 10, 64); err == nil {
			c.GitHub.AppID = id
		}
	}
	if instID := os.Getenv("GITHUB_APP_INSTALLATION_ID"); instID != "" {
		if id, err := strconv.ParseInt(instID, 10, 64); err == nil {
			c.GitHub.InstallationID = id
		}
	}
	if keyPath := os.Getenv("GITHUB_APP_PRIVATE_KEY_PATH"); keyPath != "" {
		c.GitHub.PrivateKeyPath = keyPath
	}
	if apiKey := os.Getenv("ANTHROPIC_API_KEY"); apiKey != "" {
		c.LLM.AnthropicAPIKey = apiKey
	}
	if apiKey := os.Getenv("GOOGLE_API_KEY"); apiKey != "" {
		c.LLM.GoogleAPIKey = apiKey
	}
	if provider := os.Getenv("VOYAGER_PROVIDER"); provider != "" {
		c.LLM.Provider = provider
	}
	if model := os.Getenv("VOYAGER_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if prefix := os.Getenv("VOYAGER_BRANCH_PREFIX"); prefix != "" {
		c.BranchPrefix = prefix
	}
}

// Validate checks that the configuration is complete enough to run. Missing
// identifiers are input errors and abort before any network effect.
func (c *Config) Validate() error {
	if !c.GitHub.hasAppAuth() && c.GitHub.Token == "" {
		return fmt.Errorf("GitHub token or app credentials are required")
	}
	if c.GitHub.Repository == "" {
		return fmt.Errorf("GitHub repository is required")
	}
	if _, _, err := c.GitHub.SplitRepository(); err != nil {
		return err
	}
	if c.GitHub.EventPath == "" {
		return fmt.Errorf("issue event path is required")
	}
	switch c.LLM.Provider {
	case "claude":
		if c.LLM.AnthropicAPIKey == "" {
			return fmt.Errorf("anthropic API key is required for the claude provider")
		}
	case "gemini":
		if c.LLM.GoogleAPIKey == "" {
			return fmt.Errorf("google API key is required for the gemini provider")
		}
	default:
		return fmt.Errorf("unknown completion provider: %s", c.LLM.Provider)
	}
	if len(c.Policy.AllowedRoots) == 0 {
		return fmt.Errorf("policy must list at least one allowed root")
	}
	return nil
}

func (g GitHubConfig) hasAppAuth() bool {
	return g.AppID != 0 && g.InstallationID != 0 && g.PrivateKeyPath != ""
}

// SplitRepository splits the "owner/name" repository identifier.
func (g GitHubConfig) SplitRepository() (owner, name string, err error) {
	parts := strings.SplitN(g.Repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository identifier: %q", g.Repository)
	}
	return parts[0], parts[1], nil
}

// SourceRoot returns the primary allowed root, used by the extractor's path
// heuristic and the prompt's formatting instructions.
func (c *Config) SourceRoot() string {
	if len(c.Policy.AllowedRoots) > 0 {
		return c.Policy.AllowedRoots[0]
	}
	return "src/"
}
