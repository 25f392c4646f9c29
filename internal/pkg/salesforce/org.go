package salesforce

import (
	"context"
	"strings"

	"github.com/sfpd/picklist-dependency/internal/pkg/filesystem"
	"github.com/sfpd/picklist-dependency/internal/pkg/utils/errors"
)

const AliasFile = "alias.json"

var (
	ErrMissingAccessToken = errors.New("missing access token, set it by the --access-token flag or by the SFPD_ACCESS_TOKEN ENV")
	ErrMissingInstanceURL = errors.New("missing instance URL, set it by the --instance-url flag or by the SFPD_INSTANCE_URL ENV")
)

// Credentials set by flags or ENVs take precedence over the state directory.
type Credentials struct {
	InstanceURL string
	AccessToken string
}

// Org is the resolved target org.
type Org struct {
	Alias       string
	Username    string
	InstanceURL string
	AccessToken string
}

type aliasFile struct {
	Orgs map[string]string `json:"orgs"`
}

type authFile struct {
	Username    string `json:"username"`
	InstanceURL string `json:"instanceUrl"`
	AccessToken string `json:"accessToken"`
}

// ResolveOrg resolves an alias or a username to the org.
// The stateFs is rooted at the state directory, it may contain "alias.json" and "<username>.json" files.
func ResolveOrg(ctx context.Context, stateFs filesystem.Fs, ref string, creds Credentials) (Org, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Org{}, errors.New("target org is not set")
	}

	org := Org{Username: ref, InstanceURL: creds.InstanceURL, AccessToken: creds.AccessToken}

	// Alias -> username
	if stateFs.IsFile(ctx, AliasFile) {
		aliases := &aliasFile{}
		if _, err := filesystem.ReadJSONFileTo(ctx, stateFs, filesystem.NewFileDef(AliasFile).SetDescription("alias file"), aliases); err != nil {
			return Org{}, err
		}
		if username, found := aliases.Orgs[ref]; found {
			org.Alias = ref
			org.Username = username
		}
	}

	// Fill in missing credentials from the auth file
	authPath := org.Username + ".json"
	if (org.InstanceURL == "" || org.AccessToken == "") && stateFs.IsFile(ctx, authPath) {
		auth := &authFile{}
		if _, err := filesystem.ReadJSONFileTo(ctx, stateFs, filesystem.NewFileDef(authPath).SetDescription("auth file"), auth); err != nil {
			return Org{}, err
		}
		if org.InstanceURL == "" {
			org.InstanceURL = auth.InstanceURL
		}
		if org.AccessToken == "" {
			org.AccessToken = auth.AccessToken
		}
	}

	switch {
	case org.InstanceURL == "":
		return Org{}, ErrMissingInstanceURL
	case org.AccessToken == "":
		return Org{}, ErrMissingAccessToken
	}

	return org, nil
}

// String returns the alias if any, otherwise the username.
func (o Org) String() string {
	if o.Alias != "" {
		return o.Alias
	}
	return o.Username
}
