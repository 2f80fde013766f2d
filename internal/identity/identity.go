// Package identity signs the local user in and out.
//
// There is no account server. A sign-in resolves a profile from
// configuration or, failing that, from git's user settings.
package identity

import (
	"context"
	"errors"
	"net/url"
	"os/exec"
	"strings"

	"github.com/google/uuid"

	"github.com/dhabedank/lumina/internal/core"
)

// ErrNoProfile means neither configuration nor git supplied a name or email.
var ErrNoProfile = errors.New("no profile found: set profile.name and profile.email in ~/.lumina.yaml or git config user.name/user.email")

// avatarURL is the generated avatar service used for profile pictures.
const avatarURL = "https://api.dicebear.com/7.x/notionists/svg?seed="

// Provider signs a user in or out.
type Provider interface {
	Login(ctx context.Context) (*core.User, error)
	Logout(ctx context.Context) error
}

// Profile is a configured name and email. Either may be empty.
type Profile struct {
	Name  string
	Email string
}

// LocalProvider builds the user from a configured profile.
type LocalProvider struct {
	profile Profile

	// gitConfig reads one git config key. Replaced in tests.
	gitConfig func(ctx context.Context, key string) string
}

// NewLocalProvider creates a provider for profile.
func NewLocalProvider(profile Profile) *LocalProvider {
	return &LocalProvider{profile: profile, gitConfig: readGitConfig}
}

// Login returns the local user. Missing fields are filled from git.
func (p *LocalProvider) Login(ctx context.Context) (*core.User, error) {
	name := strings.TrimSpace(p.profile.Name)
	email := strings.TrimSpace(p.profile.Email)

	if name == "" {
		name = p.gitConfig(ctx, "user.name")
	}
	if email == "" {
		email = p.gitConfig(ctx, "user.email")
	}
	if name == "" && email == "" {
		return nil, ErrNoProfile
	}
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	return NewUser(name, email), nil
}

// Logout has nothing to revoke locally.
func (p *LocalProvider) Logout(ctx context.Context) error {
	return nil
}

// NewUser builds a user whose ID is stable for a given email, so signing
// out and back in yields the same identity.
func NewUser(name, email string) *core.User {
	seed := strings.ToLower(email)
	if seed == "" {
		seed = strings.ToLower(name)
	}
	return &core.User{
		ID:       uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+seed)).String(),
		Name:     name,
		Email:    email,
		PhotoURL: avatarURL + url.QueryEscape(name),
	}
}

func readGitConfig(ctx context.Context, key string) string {
	out, err := exec.CommandContext(ctx, "git", "config", "--get", key).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
